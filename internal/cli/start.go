package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasksync/tasksync/internal/calendar"
	"github.com/tasksync/tasksync/internal/config"
	"github.com/tasksync/tasksync/internal/constants"
	"github.com/tasksync/tasksync/internal/devops"
	"github.com/tasksync/tasksync/internal/errors"
	"github.com/tasksync/tasksync/internal/pace"
	"github.com/tasksync/tasksync/internal/schedule"
	"github.com/tasksync/tasksync/internal/state"
)

// startResult is what the start command reports.
type startResult struct {
	WorkItemID int        `json:"work_item_id"`
	Title      string     `json:"title"`
	TimerID    string     `json:"timer_id,omitempty"`
	FocusStart *time.Time `json:"focus_start,omitempty"`
	FocusEnd   *time.Time `json:"focus_end,omitempty"`
	DryRun     bool       `json:"dry_run,omitempty"`
}

// AddStartCommand adds the start command to the root command.
func AddStartCommand(root *cobra.Command, flags *GlobalFlags, deps *Deps) {
	var (
		focus  bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "start <work-item-id>",
		Short: "Start working on a work item",
		Long: `Start working on a work item: starts a timer against it, records it as the
current task, and with --focus reserves the next free aligned slot on your
calendar inside work hours.

With --dry-run every side effect is skipped, including the local state write;
the command only reports what it would do.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return errors.Wrapf(errors.ErrEmptyValue, "work item ID must be a positive integer, got %q", args[0])
			}
			return runStart(cmd, flags, deps, id, focus, dryRun)
		},
	}

	cmd.Flags().BoolVar(&focus, "focus", false, "schedule a focus block on the calendar")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report the plan without changing anything")

	root.AddCommand(cmd)
}

func runStart(cmd *cobra.Command, flags *GlobalFlags, deps *Deps, id int, focus, dryRun bool) error {
	ctx := cmd.Context()
	logger := GetLogger()

	cfg, err := deps.LoadConfig(ctx)
	if err != nil {
		return err
	}

	tracker, err := deps.NewTracker(cfg)
	if err != nil {
		return err
	}

	item, err := tracker.GetWorkItem(ctx, id)
	if err != nil {
		return err
	}

	logger.Info().
		Int("work_item_id", item.ID).
		Str("title", item.Title()).
		Bool("dry_run", dryRun).
		Msg("starting task")

	result := startResult{
		WorkItemID: item.ID,
		Title:      item.Title(),
		DryRun:     dryRun,
	}

	if focus && !cfg.Calendar.Enabled {
		logger.Warn().Msg("calendar integration is disabled, skipping focus block")
		focus = false
	}

	var slot *schedule.Slot
	if focus {
		slot, err = planFocusSlot(ctx, deps, cfg)
		if err != nil {
			return err
		}
		result.FocusStart = &slot.Start
		result.FocusEnd = &slot.End
	}

	if dryRun {
		return renderStart(cmd, flags, result)
	}

	timerID, err := switchTimer(ctx, deps, cfg, item)
	if err != nil {
		return err
	}
	result.TimerID = timerID

	var eventID string
	if slot != nil {
		eventID, err = bookFocusSlot(ctx, deps, cfg, item, *slot)
		if err != nil {
			return err
		}
	}

	now := deps.Clock.Now()
	expiry := time.Duration(cfg.State.TaskExpiryHours) * time.Hour
	err = deps.WithState(ctx, cfg, func(doc *state.Document) error {
		doc.CurrentTask = &state.CurrentTask{
			ID:        item.ID,
			Title:     item.Title(),
			StartedAt: now,
			ExpiresAt: now.Add(expiry),
		}
		if timerID != "" {
			doc.CurrentTask.TimerID = &timerID
		}
		doc.LastSync.DevOps = &now
		doc.LastSync.Pace = &now
		doc.WorkHours = state.WorkHoursState{
			Start: cfg.WorkHours.Start,
			End:   cfg.WorkHours.End,
		}
		if eventID != "" {
			doc.UpsertCalendarMapping(item.ID, eventID, now)
			doc.LastSync.Calendar = &now
		}
		return nil
	})
	if err != nil {
		return err
	}

	return renderStart(cmd, flags, result)
}

// switchTimer stops any running timer and starts one for the item.
// A timer already running on the same item is kept.
func switchTimer(ctx context.Context, deps *Deps, cfg *config.Config, item *devops.WorkItem) (string, error) {
	timer, err := deps.NewTimer(cfg)
	if err != nil {
		return "", err
	}
	logger := GetLogger()

	running, err := pace.WithRetry(ctx, constants.DefaultMaxRetries, func() (*pace.Timer, error) {
		return timer.CurrentTimer(ctx)
	})
	if err != nil {
		return "", err
	}
	if running != nil {
		if running.WorkItemID == item.ID {
			logger.Info().Str("timer_id", running.ID).Msg("timer already running on this item")
			return running.ID, nil
		}
		logger.Info().
			Int("work_item_id", running.WorkItemID).
			Msg("stopping timer on previous item")
		if _, err := timer.StopTimer(ctx, pace.StopReasonSwitched); err != nil {
			return "", err
		}
	}

	started, err := pace.WithRetry(ctx, constants.DefaultMaxRetries, func() (*pace.Timer, error) {
		return timer.StartTimer(ctx, item.ID, fmt.Sprintf("Task %d: %s", item.ID, item.Title()))
	})
	if err != nil {
		return "", err
	}
	return started.ID, nil
}

// planFocusSlot finds the next free aligned slot for the item without
// creating anything.
func planFocusSlot(ctx context.Context, deps *Deps, cfg *config.Config) (*schedule.Slot, error) {
	wh, err := cfg.ParsedWorkHours()
	if err != nil {
		return nil, err
	}

	cal, err := deps.NewCalendar(cfg)
	if err != nil {
		return nil, err
	}

	now := deps.Clock.Now()
	horizon := now.AddDate(0, 0, constants.SearchHorizonDays)
	events, err := cal.ListEvents(ctx, now, horizon)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(cfg.FocusBlocks.DurationMinutes) * time.Minute
	slot, err := schedule.FindNextSlot(calendar.BusyIntervals(events), now, duration, wh)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// bookFocusSlot creates the calendar event for a previously planned slot.
func bookFocusSlot(ctx context.Context, deps *Deps, cfg *config.Config, item *devops.WorkItem, slot schedule.Slot) (string, error) {
	wh, err := cfg.ParsedWorkHours()
	if err != nil {
		return "", err
	}
	cal, err := deps.NewCalendar(cfg)
	if err != nil {
		return "", err
	}

	event := calendar.NewFocusBlockEvent(
		item.ID,
		fmt.Sprintf("Focus: %s", item.Title()),
		slot.Start, slot.End, wh.Location,
	)
	created, err := cal.CreateEvent(ctx, event)
	if err != nil {
		return "", err
	}

	logger := GetLogger()
	logger.Info().
		Str("event_id", created.ID).
		Time("start", slot.Start).
		Time("end", slot.End).
		Msg("focus block scheduled")
	return created.ID, nil
}

func renderStart(cmd *cobra.Command, flags *GlobalFlags, result startResult) error {
	out := cmd.OutOrStdout()
	if flags.Output == OutputJSON {
		return printJSON(out, result)
	}

	if result.DryRun {
		fmt.Fprintf(out, "[dry-run] Would start task %d: %s\n", result.WorkItemID, result.Title)
		if result.FocusStart != nil {
			fmt.Fprintf(out, "[dry-run] Would book focus block %s - %s\n",
				result.FocusStart.Format(time.RFC3339), result.FocusEnd.Format(time.RFC3339))
		}
		return nil
	}

	fmt.Fprintf(out, "Started task %d: %s\n", result.WorkItemID, result.Title)
	if result.TimerID != "" {
		fmt.Fprintf(out, "Timer running (%s)\n", result.TimerID)
	}
	if result.FocusStart != nil {
		fmt.Fprintf(out, "Focus block booked %s - %s\n",
			result.FocusStart.Format(time.RFC3339), result.FocusEnd.Format(time.RFC3339))
	}
	return nil
}
