package cli

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tasksync/tasksync/internal/errors"
	"github.com/tasksync/tasksync/internal/pace"
)

// checkinResult aggregates status across the local session and the remote
// systems.
type checkinResult struct {
	Task  *currentResult `json:"task,omitempty"`
	Timer *timerStatus   `json:"timer,omitempty"`
	Item  *itemView      `json:"item,omitempty"`
}

type timerStatus struct {
	ID         string    `json:"id"`
	WorkItemID int       `json:"work_item_id"`
	StartedAt  time.Time `json:"started_at"`
	Elapsed    string    `json:"elapsed"`
}

// AddCheckinCommand adds the checkin command to the root command.
func AddCheckinCommand(root *cobra.Command, flags *GlobalFlags, deps *Deps) {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Show local session, timer and tracker status",
		Long: `Show a combined status: the locally recorded task, the remote timer, and
the tracker's view of the work item. The remote systems are queried in
parallel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheckin(cmd, flags, deps)
		},
	}

	root.AddCommand(cmd)
}

func runCheckin(cmd *cobra.Command, flags *GlobalFlags, deps *Deps) error {
	ctx := cmd.Context()

	cfg, err := deps.LoadConfig(ctx)
	if err != nil {
		return err
	}

	now := deps.Clock.Now()
	var result checkinResult

	current, err := loadCurrentTask(cfg, now)
	if err != nil && !stderrors.Is(err, errors.ErrNoCurrentTask) {
		return err
	}
	if current != nil {
		result.Task = &currentResult{
			WorkItemID: current.ID,
			Title:      current.Title,
			StartedAt:  current.StartedAt,
			Elapsed:    pace.FormatDuration(now.Sub(current.StartedAt)),
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		timer, err := deps.NewTimer(cfg)
		if err != nil {
			return err
		}
		running, err := timer.CurrentTimer(gctx)
		if err != nil {
			return err
		}
		if running != nil {
			result.Timer = &timerStatus{
				ID:         running.ID,
				WorkItemID: running.WorkItemID,
				StartedAt:  running.StartedAt,
				Elapsed:    pace.FormatDuration(now.Sub(running.StartedAt)),
			}
		}
		return nil
	})

	if current != nil {
		g.Go(func() error {
			tracker, err := deps.NewTracker(cfg)
			if err != nil {
				return err
			}
			item, err := tracker.GetWorkItem(gctx, current.ID)
			if err != nil {
				return err
			}
			view := viewOf(item)
			result.Item = &view
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return renderCheckin(cmd, flags, result)
}

func renderCheckin(cmd *cobra.Command, flags *GlobalFlags, result checkinResult) error {
	out := cmd.OutOrStdout()
	if flags.Output == OutputJSON {
		return printJSON(out, result)
	}

	if result.Task == nil {
		fmt.Fprintln(out, "No active task.")
	} else {
		fmt.Fprintf(out, "Task %d: %s (started %s ago)\n",
			result.Task.WorkItemID, result.Task.Title, result.Task.Elapsed)
	}

	if result.Timer == nil {
		fmt.Fprintln(out, "No timer running.")
	} else {
		fmt.Fprintf(out, "Timer on item %d, running %s\n",
			result.Timer.WorkItemID, result.Timer.Elapsed)
	}

	if result.Item != nil {
		fmt.Fprintf(out, "Tracker: %q is %s (rev %d)\n",
			result.Item.Title, result.Item.State, result.Item.Rev)
	}

	if result.Task != nil && result.Timer != nil && result.Task.WorkItemID != result.Timer.WorkItemID {
		fmt.Fprintln(out, "Warning: timer and local task disagree; run 'tasksync start' to resync.")
	}
	return nil
}
