package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/tasksync/tasksync/internal/errors"
)

// WallClock is a time of day without a date, as configured for work hours.
type WallClock struct {
	Hour   int
	Minute int
}

// Minutes returns the wall-clock time as minutes past midnight.
func (w WallClock) Minutes() int {
	return w.Hour*60 + w.Minute
}

// String formats the wall-clock time as HH:MM.
func (w WallClock) String() string {
	return strconv.Itoa(w.Hour/10) + strconv.Itoa(w.Hour%10) + ":" +
		strconv.Itoa(w.Minute/10) + strconv.Itoa(w.Minute%10)
}

// ParseWallClock parses a 24-hour HH:MM string.
func ParseWallClock(s string) (WallClock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return WallClock{}, errors.Wrapf(errors.ErrInvalidWorkHours, "expected HH:MM, got %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return WallClock{}, errors.Wrapf(errors.ErrInvalidWorkHours, "hour out of range in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return WallClock{}, errors.Wrapf(errors.ErrInvalidWorkHours, "minute out of range in %q", s)
	}
	return WallClock{Hour: hour, Minute: minute}, nil
}

// WorkHours is the daily wall-clock window during which slots may be placed.
// Immutable for the duration of a search.
type WorkHours struct {
	Start    WallClock
	End      WallClock
	Location *time.Location
}

// ParseWorkHours builds a WorkHours from HH:MM strings and an IANA timezone
// name. An empty timezone defaults to UTC. The end must fall after the start.
func ParseWorkHours(start, end, timezone string) (WorkHours, error) {
	s, err := ParseWallClock(start)
	if err != nil {
		return WorkHours{}, err
	}
	e, err := ParseWallClock(end)
	if err != nil {
		return WorkHours{}, err
	}
	if e.Minutes() <= s.Minutes() {
		return WorkHours{}, errors.Wrapf(errors.ErrInvalidWorkHours,
			"day end %s must fall after day start %s", end, start)
	}

	loc := time.UTC
	if timezone != "" {
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return WorkHours{}, errors.Wrapf(errors.ErrInvalidWorkHours, "unknown timezone %q", timezone)
		}
	}

	return WorkHours{Start: s, End: e, Location: loc}, nil
}

// WindowForDay returns the bounded search window for the calendar day that
// contains day (interpreted in the work-hours timezone).
func (wh WorkHours) WindowForDay(day time.Time) Interval {
	local := day.In(wh.Location)
	start := time.Date(local.Year(), local.Month(), local.Day(),
		wh.Start.Hour, wh.Start.Minute, 0, 0, wh.Location)
	end := time.Date(local.Year(), local.Month(), local.Day(),
		wh.End.Hour, wh.End.Minute, 0, 0, wh.Location)
	return Interval{Start: start, End: end}
}
