package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasksync/tasksync/internal/calendar"
	"github.com/tasksync/tasksync/internal/constants"
	"github.com/tasksync/tasksync/internal/schedule"
)

// scheduleResult is what the schedule command reports.
type scheduleResult struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration string    `json:"duration"`
}

// AddScheduleCommand adds the schedule command to the root command.
func AddScheduleCommand(root *cobra.Command, flags *GlobalFlags, deps *Deps) {
	var durationMinutes int

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Find the next free focus slot",
		Long: `Find the earliest free slot of the requested length on your calendar.
Slots start on quarter-hour boundaries inside your configured work hours
and the search covers the next 7 days. Nothing is booked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchedule(cmd, flags, deps, durationMinutes)
		},
	}

	cmd.Flags().IntVar(&durationMinutes, "duration", 0, "slot length in minutes (default: configured focus length)")

	root.AddCommand(cmd)
}

func runSchedule(cmd *cobra.Command, flags *GlobalFlags, deps *Deps, durationMinutes int) error {
	ctx := cmd.Context()

	cfg, err := deps.LoadConfig(ctx)
	if err != nil {
		return err
	}

	if durationMinutes == 0 {
		durationMinutes = cfg.FocusBlocks.DurationMinutes
	}
	duration := time.Duration(durationMinutes) * time.Minute

	wh, err := cfg.ParsedWorkHours()
	if err != nil {
		return err
	}

	cal, err := deps.NewCalendar(cfg)
	if err != nil {
		return err
	}

	now := deps.Clock.Now()
	events, err := cal.ListEvents(ctx, now, now.AddDate(0, 0, constants.SearchHorizonDays))
	if err != nil {
		return err
	}

	slot, err := schedule.FindNextSlot(calendar.BusyIntervals(events), now, duration, wh)
	if err != nil {
		return err
	}

	result := scheduleResult{
		Start:    slot.Start,
		End:      slot.End,
		Duration: duration.String(),
	}

	out := cmd.OutOrStdout()
	if flags.Output == OutputJSON {
		return printJSON(out, result)
	}

	local := slot.Start.In(wh.Location)
	fmt.Fprintf(out, "Next free slot: %s - %s (%s)\n",
		local.Format("Mon 2006-01-02 15:04"),
		slot.End.In(wh.Location).Format("15:04"),
		result.Duration)
	return nil
}
