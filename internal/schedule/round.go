package schedule

import (
	"time"

	"github.com/tasksync/tasksync/internal/constants"
)

// alignMinutes is the slot alignment granularity in whole minutes.
const alignMinutes = int(constants.SlotAlignment / time.Minute)

// RoundUp rounds t up to the next slot boundary (:00, :15, :30, :45).
//
// Times already on a boundary are returned unchanged, so the function is
// idempotent. A time with minutes in (45, 60) rolls into the next hour at
// :00. Rounding is monotonic: t1 <= t2 implies RoundUp(t1) <= RoundUp(t2).
func RoundUp(t time.Time) time.Time {
	if t.Minute()%alignMinutes == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t
	}
	// Floor to the current boundary, then step forward one. time.Date
	// normalizes the hour rollover.
	floored := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(),
		t.Minute()-t.Minute()%alignMinutes, 0, 0, t.Location())
	return floored.Add(constants.SlotAlignment)
}

// aligned reports whether t sits exactly on a slot boundary.
func aligned(t time.Time) bool {
	return t.Minute()%alignMinutes == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
