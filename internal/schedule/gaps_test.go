package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasksync/tasksync/internal/schedule"
)

// day returns a UTC time on 2026-01-08, the reference day used across
// these tests.
func day(hour, minute int) time.Time {
	return time.Date(2026, 1, 8, hour, minute, 0, 0, time.UTC)
}

func iv(t *testing.T, start, end time.Time) schedule.Interval {
	t.Helper()
	interval, err := schedule.NewInterval(start, end)
	require.NoError(t, err)
	return interval
}

func TestFindGaps_EmptyBusySet(t *testing.T) {
	t.Parallel()

	gaps := schedule.FindGaps(nil, day(9, 0), day(17, 0))

	require.Len(t, gaps, 1)
	assert.Equal(t, day(9, 0), gaps[0].Start)
	assert.Equal(t, day(17, 0), gaps[0].End)
}

func TestFindGaps_FullyCoveredWindow(t *testing.T) {
	t.Parallel()

	busy := []schedule.Interval{iv(t, day(8, 0), day(18, 0))}
	gaps := schedule.FindGaps(busy, day(9, 0), day(17, 0))

	assert.Empty(t, gaps)
}

func TestFindGaps_MultipleEvents(t *testing.T) {
	t.Parallel()

	busy := []schedule.Interval{
		iv(t, day(9, 0), day(10, 0)),
		iv(t, day(11, 0), day(12, 0)),
		iv(t, day(14, 0), day(15, 0)),
	}
	gaps := schedule.FindGaps(busy, day(8, 30), day(17, 0))

	// Before first, between each pair, after last.
	require.Len(t, gaps, 4)
	assert.Equal(t, schedule.Interval{Start: day(8, 30), End: day(9, 0)}, gaps[0])
	assert.Equal(t, schedule.Interval{Start: day(10, 0), End: day(11, 0)}, gaps[1])
	assert.Equal(t, schedule.Interval{Start: day(12, 0), End: day(14, 0)}, gaps[2])
	assert.Equal(t, schedule.Interval{Start: day(15, 0), End: day(17, 0)}, gaps[3])
}

func TestFindGaps_UnsortedAndOverlappingInput(t *testing.T) {
	t.Parallel()

	busy := []schedule.Interval{
		iv(t, day(11, 0), day(12, 0)),
		iv(t, day(9, 0), day(10, 30)),
		iv(t, day(10, 0), day(11, 30)), // overlaps both neighbors
		iv(t, day(9, 0), day(10, 30)),  // exact duplicate
	}
	gaps := schedule.FindGaps(busy, day(8, 30), day(17, 0))

	require.Len(t, gaps, 2)
	assert.Equal(t, schedule.Interval{Start: day(8, 30), End: day(9, 0)}, gaps[0])
	assert.Equal(t, schedule.Interval{Start: day(12, 0), End: day(17, 0)}, gaps[1])
}

func TestFindGaps_DiscardsEventsOutsideWindow(t *testing.T) {
	t.Parallel()

	busy := []schedule.Interval{
		iv(t, day(6, 0), day(7, 0)),   // ends before window
		iv(t, day(18, 0), day(19, 0)), // starts after window
		iv(t, day(8, 0), day(9, 0)),   // straddles window start
	}
	gaps := schedule.FindGaps(busy, day(8, 30), day(17, 0))

	require.Len(t, gaps, 1)
	assert.Equal(t, schedule.Interval{Start: day(9, 0), End: day(17, 0)}, gaps[0])
}

// TestFindGaps_Complementarity verifies that for synthetic busy sets the
// returned gaps are disjoint from the busy intervals, ordered by start, and
// that gaps plus clipped busy time exactly reconstruct the window.
func TestFindGaps_Complementarity(t *testing.T) {
	t.Parallel()

	windowStart, windowEnd := day(8, 0), day(18, 0)

	cases := []struct {
		name string
		busy []schedule.Interval
	}{
		{"empty", nil},
		{"single", []schedule.Interval{iv(t, day(9, 0), day(10, 0))}},
		{"touching", []schedule.Interval{
			iv(t, day(9, 0), day(10, 0)),
			iv(t, day(10, 0), day(11, 0)),
		}},
		{"overlapping chain", []schedule.Interval{
			iv(t, day(9, 0), day(11, 0)),
			iv(t, day(10, 0), day(12, 0)),
			iv(t, day(11, 30), day(13, 0)),
		}},
		{"straddling both edges", []schedule.Interval{
			iv(t, day(7, 0), day(8, 30)),
			iv(t, day(17, 30), day(19, 0)),
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gaps := schedule.FindGaps(tc.busy, windowStart, windowEnd)

			// Ordered, disjoint, inside the window.
			prev := windowStart
			for _, g := range gaps {
				assert.True(t, g.Start.Before(g.End), "gap must be non-empty")
				assert.False(t, g.Start.Before(prev), "gaps must be ordered and disjoint")
				assert.False(t, g.End.After(windowEnd), "gap must stay inside window")
				prev = g.End
			}

			// Disjoint from every busy interval.
			for _, g := range gaps {
				for _, b := range tc.busy {
					assert.False(t, g.Overlaps(b), "gap %v overlaps busy %v", g, b)
				}
			}

			// Gap time plus clipped busy time reconstructs the window.
			var gapTotal time.Duration
			for _, g := range gaps {
				gapTotal += g.Duration()
			}
			busyTotal := clippedBusyTotal(tc.busy, windowStart, windowEnd)
			assert.Equal(t, windowEnd.Sub(windowStart), gapTotal+busyTotal)
		})
	}
}

// clippedBusyTotal measures the union of busy time clipped to the window,
// counting overlaps once.
func clippedBusyTotal(busy []schedule.Interval, windowStart, windowEnd time.Time) time.Duration {
	var total time.Duration
	for cursor := windowStart; cursor.Before(windowEnd); cursor = cursor.Add(time.Minute) {
		next := cursor.Add(time.Minute)
		for _, b := range busy {
			if b.Start.Before(next) && cursor.Before(b.End) {
				total += time.Minute
				break
			}
		}
	}
	return total
}
