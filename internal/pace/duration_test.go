package pace_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tasksync/tasksync/internal/pace"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"hours and minutes", time.Hour + time.Minute + 5*time.Second, "1h 1m"},
		{"minutes only", 5 * time.Minute, "5m"},
		{"exact hours", 2 * time.Hour, "2h 0m"},
		{"sub-minute", 30 * time.Second, "0m"},
		{"zero", 0, "0m"},
		{"negative clamps", -time.Minute, "0m"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pace.FormatDuration(tt.in))
		})
	}
}
