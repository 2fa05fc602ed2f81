package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasksync/tasksync/internal/clock"
	"github.com/tasksync/tasksync/internal/errors"
	"github.com/tasksync/tasksync/internal/pace"
)

func TestStopClosesTimerAndClearsState(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "start", "42")
	require.NoError(t, err)

	out, err := env.run(t, "stop")
	require.NoError(t, err)
	assert.Contains(t, out, "Stopped task 42: Implement login")
	assert.Contains(t, out, "Tracked 1h 0m")

	assert.Equal(t, 1, env.timer.stops)
	assert.Equal(t, pace.StopReasonCompleted, env.timer.lastReason)

	doc := env.loadStateDoc(t)
	assert.Nil(t, doc.CurrentTask)
}

func TestStopWithoutCurrentTask(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "stop")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoCurrentTask)
	assert.Equal(t, 0, env.timer.stops)
}

func TestStopDryRunLeavesEverything(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "start", "42")
	require.NoError(t, err)

	out, err := env.run(t, "stop", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "[dry-run] Would stop task 42")

	assert.Equal(t, 0, env.timer.stops)
	doc := env.loadStateDoc(t)
	require.NotNil(t, doc.CurrentTask, "dry-run keeps the task current")
}

func TestCurrentShowsActiveTask(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "start", "42")
	require.NoError(t, err)

	out, err := env.run(t, "current")
	require.NoError(t, err)
	assert.Contains(t, out, "Task 42: Implement login")
	assert.Contains(t, out, "Timer timer-1")
}

func TestCurrentWithoutTask(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "current")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoCurrentTask)
}

func TestCurrentIgnoresExpiredTask(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "start", "42")
	require.NoError(t, err)

	// Jump past the 24h expiry.
	env.deps.Clock = clock.Fixed{T: testNow.Add(25 * time.Hour)}

	_, err = env.run(t, "current")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoCurrentTask)
}

func TestCheckinAggregatesStatus(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "start", "42")
	require.NoError(t, err)

	out, err := env.run(t, "checkin")
	require.NoError(t, err)
	assert.Contains(t, out, "Task 42: Implement login")
	assert.Contains(t, out, "Timer on item 42")
	assert.Contains(t, out, `Tracker: "Implement login" is Active (rev 3)`)
}

func TestCheckinIdle(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "checkin")
	require.NoError(t, err)
	assert.Contains(t, out, "No active task.")
	assert.Contains(t, out, "No timer running.")
}

func TestCheckinWarnsOnMismatch(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "start", "42")
	require.NoError(t, err)

	// Timer got moved to another item outside tasksync.
	env.timer.running = &pace.Timer{ID: "timer-9", WorkItemID: 7, StartedAt: testNow}

	out, err := env.run(t, "checkin")
	require.NoError(t, err)
	assert.Contains(t, out, "timer and local task disagree")
}

func TestScheduleFindsSlot(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "schedule")
	require.NoError(t, err)
	// now=09:07 on an empty calendar rounds up to 09:15.
	assert.Contains(t, out, "09:15")
	assert.Contains(t, out, "45m")
}

func TestScheduleCustomDuration(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "schedule", "--duration", "90", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"duration": "1h30m0s"`)
	assert.Contains(t, out, "09:15:00Z")
}

func TestScheduleInvalidDuration(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "schedule", "--duration", "-15")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidDuration)
}

func TestConfigShowRedactsPAT(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "organization: org")
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "testpat")
}
