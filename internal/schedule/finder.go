package schedule

import (
	"time"

	"github.com/tasksync/tasksync/internal/constants"
	"github.com/tasksync/tasksync/internal/errors"
)

// Slot is the chosen placement for a new fixed-duration block. Its start is
// aligned to the slot granularity, its length equals the requested duration,
// and it is disjoint from every busy interval it was searched against.
type Slot struct {
	Start time.Time
	End   time.Time
}

// FindNextSlot finds the earliest free block of the requested duration.
//
// The search starts at now rounded up to the next slot boundary and walks up
// to SearchHorizonDays consecutive calendar days. For each day it computes
// the work-hours window (clipped to the rounded now on the first day), finds
// the free gaps against busy, and takes the first gap the block fits in.
// The search is greedy: the earliest fit wins, with no attempt to pick a
// "best" slot among several fits on the same day.
//
// Returns ErrNoSlotAvailable when the horizon is exhausted and
// ErrInvalidDuration for a non-positive duration.
func FindNextSlot(busy []Interval, now time.Time, duration time.Duration, wh WorkHours) (Slot, error) {
	if duration <= 0 {
		return Slot{}, errors.Wrapf(errors.ErrInvalidDuration, "requested %s", duration)
	}

	alignedNow := RoundUp(now.In(wh.Location))

	day := alignedNow
	for i := 0; i < constants.SearchHorizonDays; i++ {
		window := wh.WindowForDay(day)

		// Work does not retroactively extend into the past on the first day.
		start := window.Start
		if start.Before(alignedNow) {
			start = alignedNow
		}

		for _, gap := range FindGaps(busy, start, window.End) {
			if gap.Duration() < duration {
				continue
			}

			slotStart := gap.Start
			if !aligned(slotStart) {
				slotStart = RoundUp(slotStart)
			}
			slotEnd := slotStart.Add(duration)

			// Alignment may have pushed the block past the gap or past the
			// end of the working day.
			if slotEnd.After(gap.End) || slotEnd.After(window.End) {
				continue
			}

			return Slot{Start: slotStart, End: slotEnd}, nil
		}

		day = day.AddDate(0, 0, 1)
	}

	return Slot{}, errors.Wrapf(errors.ErrNoSlotAvailable,
		"no free %s block within %d days", duration, constants.SearchHorizonDays)
}
