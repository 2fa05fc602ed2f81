package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasksync/tasksync/internal/config"
	"github.com/tasksync/tasksync/internal/errors"
	"github.com/tasksync/tasksync/internal/pace"
	"github.com/tasksync/tasksync/internal/state"
)

// stopResult is what the stop command reports.
type stopResult struct {
	WorkItemID int    `json:"work_item_id"`
	Title      string `json:"title"`
	Duration   string `json:"duration,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty"`
}

// AddStopCommand adds the stop command to the root command.
func AddStopCommand(root *cobra.Command, flags *GlobalFlags, deps *Deps) {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the current task",
		Long: `Stop the current task: stops the running timer and clears the local
session. The tracked duration is reported on success.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStop(cmd, flags, deps, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report the plan without changing anything")

	root.AddCommand(cmd)
}

func runStop(cmd *cobra.Command, flags *GlobalFlags, deps *Deps, dryRun bool) error {
	ctx := cmd.Context()
	logger := GetLogger()

	cfg, err := deps.LoadConfig(ctx)
	if err != nil {
		return err
	}

	current, err := loadCurrentTask(cfg, deps.Clock.Now())
	if err != nil {
		return err
	}

	result := stopResult{
		WorkItemID: current.ID,
		Title:      current.Title,
		DryRun:     dryRun,
	}

	if dryRun {
		return renderStop(cmd, flags, result)
	}

	timer, err := deps.NewTimer(cfg)
	if err != nil {
		return err
	}

	stopped, err := timer.StopTimer(ctx, pace.StopReasonCompleted)
	if err != nil {
		return err
	}
	result.Duration = pace.FormatDuration(time.Duration(stopped.Duration) * time.Second)

	logger.Info().
		Int("work_item_id", current.ID).
		Int("duration_secs", stopped.Duration).
		Msg("task stopped")

	now := deps.Clock.Now()
	err = deps.WithState(ctx, cfg, func(doc *state.Document) error {
		doc.CurrentTask = nil
		doc.LastSync.Pace = &now
		return nil
	})
	if err != nil {
		return err
	}

	return renderStop(cmd, flags, result)
}

// loadCurrentTask reads the state document without taking the write path and
// returns the active task. Expired tasks count as absent.
func loadCurrentTask(cfg *config.Config, now time.Time) (*state.CurrentTask, error) {
	_, statePath, err := config.StatePaths(cfg)
	if err != nil {
		return nil, err
	}
	doc, err := state.Load(statePath)
	if err != nil {
		return nil, err
	}
	if doc.CurrentTask == nil || doc.CurrentTask.Expired(now) {
		return nil, errors.ErrNoCurrentTask
	}
	return doc.CurrentTask, nil
}

func renderStop(cmd *cobra.Command, flags *GlobalFlags, result stopResult) error {
	out := cmd.OutOrStdout()
	if flags.Output == OutputJSON {
		return printJSON(out, result)
	}

	if result.DryRun {
		fmt.Fprintf(out, "[dry-run] Would stop task %d: %s\n", result.WorkItemID, result.Title)
		return nil
	}

	fmt.Fprintf(out, "Stopped task %d: %s\n", result.WorkItemID, result.Title)
	if result.Duration != "" {
		fmt.Fprintf(out, "Tracked %s\n", result.Duration)
	}
	return nil
}
