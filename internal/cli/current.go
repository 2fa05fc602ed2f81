package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasksync/tasksync/internal/pace"
)

// currentResult is what the current command reports.
type currentResult struct {
	WorkItemID int       `json:"work_item_id"`
	Title      string    `json:"title"`
	StartedAt  time.Time `json:"started_at"`
	Elapsed    string    `json:"elapsed"`
	TimerID    string    `json:"timer_id,omitempty"`
}

// AddCurrentCommand adds the current command to the root command.
func AddCurrentCommand(root *cobra.Command, flags *GlobalFlags, deps *Deps) {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the task being worked on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCurrent(cmd, flags, deps)
		},
	}

	root.AddCommand(cmd)
}

func runCurrent(cmd *cobra.Command, flags *GlobalFlags, deps *Deps) error {
	ctx := cmd.Context()

	cfg, err := deps.LoadConfig(ctx)
	if err != nil {
		return err
	}

	now := deps.Clock.Now()
	current, err := loadCurrentTask(cfg, now)
	if err != nil {
		return err
	}

	result := currentResult{
		WorkItemID: current.ID,
		Title:      current.Title,
		StartedAt:  current.StartedAt,
		Elapsed:    pace.FormatDuration(now.Sub(current.StartedAt)),
	}
	if current.TimerID != nil {
		result.TimerID = *current.TimerID
	}

	out := cmd.OutOrStdout()
	if flags.Output == OutputJSON {
		return printJSON(out, result)
	}

	fmt.Fprintf(out, "Task %d: %s\n", result.WorkItemID, result.Title)
	fmt.Fprintf(out, "Started %s (%s ago)\n", result.StartedAt.Format(time.RFC3339), result.Elapsed)
	if result.TimerID != "" {
		fmt.Fprintf(out, "Timer %s\n", result.TimerID)
	}
	return nil
}
