package pace

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as "1h 5m" or "5m" for display.
// Sub-minute durations collapse to "0m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	mins := int(d%time.Hour) / int(time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
