package schedule

import (
	"sort"
	"time"
)

// FindGaps computes the free intervals between busy intervals within the
// window [windowStart, windowEnd).
//
// Busy intervals entirely outside the window are discarded; intervals that
// partially overlap it are clipped implicitly by the sweep. The input may be
// unsorted and intervals may overlap or duplicate each other.
//
// The returned gaps are pairwise disjoint, ordered by start, and together
// with the clipped busy intervals exactly reconstruct the window. An empty
// busy set yields a single gap spanning the whole window; a fully covered
// window yields none.
func FindGaps(busy []Interval, windowStart, windowEnd time.Time) []Interval {
	survivors := make([]Interval, 0, len(busy))
	for _, b := range busy {
		// Ends before the window opens, or starts after it closes.
		if !b.End.After(windowStart) || !b.Start.Before(windowEnd) {
			continue
		}
		survivors = append(survivors, b)
	}

	sort.Slice(survivors, func(i, j int) bool {
		return survivors[i].Start.Before(survivors[j].Start)
	})

	var gaps []Interval
	cursor := windowStart
	for _, b := range survivors {
		if cursor.Before(b.Start) {
			gaps = append(gaps, Interval{Start: cursor, End: b.Start})
		}
		// max() merge: overlapping intervals never move the cursor backward.
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(windowEnd) {
		gaps = append(gaps, Interval{Start: cursor, End: windowEnd})
	}

	return gaps
}
