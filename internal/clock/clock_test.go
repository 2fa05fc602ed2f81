package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tasksync/tasksync/internal/clock"
)

func TestRealClock(t *testing.T) {
	t.Parallel()

	before := time.Now()
	now := clock.RealClock{}.Now()
	after := time.Now()

	assert.False(t, now.Before(before))
	assert.False(t, now.After(after))
}

func TestFixed(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 1, 8, 9, 7, 0, 0, time.UTC)
	c := clock.Fixed{T: ts}

	assert.Equal(t, ts, c.Now())
	assert.Equal(t, ts, c.Now(), "fixed clock never advances")
}
