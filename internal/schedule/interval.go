// Package schedule implements the free-slot search used to place focus
// blocks: reconciling busy calendar intervals against working-hours windows
// to find the first free block of a requested length.
//
// The package is pure computation over time.Time values. Fetching calendar
// events and creating the resulting block belong to the calendar package and
// the CLI layer.
package schedule

import (
	"time"

	"github.com/tasksync/tasksync/internal/errors"
)

// Interval is a half-open time range [Start, End).
// It represents both busy calendar commitments (as input) and free gaps
// (as output of FindGaps).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval returns an interval after validating that start precedes end.
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, errors.Wrapf(errors.ErrInvalidInterval,
			"interval start %s must precede end %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether the interval shares any instant with other.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// timestampLayouts are the naive (zone-less) formats accepted by
// ParseTimestamp, tried in order after RFC3339. The fractional variant
// covers Graph-style timestamps such as 2026-01-08T09:00:00.0000000.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.9999999",
}

// ParseTimestamp parses an event timestamp and normalizes it to UTC.
//
// Two forms are accepted: a timestamp with an embedded offset (RFC3339), in
// which case zone is ignored, or a naive timestamp paired with a separate
// IANA zone name. An empty zone defaults to UTC.
func ParseTimestamp(value, zone string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	loc := time.UTC
	if zone != "" {
		l, err := time.LoadLocation(zone)
		if err != nil {
			return time.Time{}, errors.Wrapf(errors.ErrInvalidTimestamp, "unknown timezone %q", zone)
		}
		loc = l
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, errors.Wrapf(errors.ErrInvalidTimestamp, "failed to parse %q", value)
}
