package state_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasksync/tasksync/internal/constants"
	"github.com/tasksync/tasksync/internal/errors"
	"github.com/tasksync/tasksync/internal/state"
)

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	doc, err := state.Load(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	assert.Equal(t, constants.StateSchemaVersion, doc.Version)
	assert.Nil(t, doc.CurrentTask)
	assert.Empty(t, doc.CalendarMappings)
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	doc, err := state.Load(path)
	require.NoError(t, err)
	assert.Equal(t, constants.StateSchemaVersion, doc.Version)
}

func TestLoad_ForwardCompatible(t *testing.T) {
	t.Parallel()

	// A document written by a newer schema: unknown fields must be ignored
	// and missing ones must default, not fail.
	raw := `{
		"version": "2.5.0",
		"current_task": {
			"id": 123,
			"title": "Implement login",
			"started_at": "2026-01-08T09:00:00Z",
			"expires_at": "2026-01-09T09:00:00Z",
			"timer_id": "timer-abc",
			"novel_field": true
		},
		"future_section": {"nested": [1, 2, 3]}
	}`
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	doc, err := state.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2.5.0", doc.Version)
	require.NotNil(t, doc.CurrentTask)
	assert.Equal(t, 123, doc.CurrentTask.ID)
	assert.Equal(t, "Implement login", doc.CurrentTask.Title)
	require.NotNil(t, doc.CurrentTask.TimerID)
	assert.Equal(t, "timer-abc", *doc.CurrentTask.TimerID)
}

func TestLoad_MissingVersionDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"current_task": null}`), 0o600))

	doc, err := state.Load(path)
	require.NoError(t, err)
	assert.Equal(t, constants.StateSchemaVersion, doc.Version)
}

func TestLoad_Corrupted(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := state.Load(path)
	assert.ErrorIs(t, err, errors.ErrStateCorrupted)
}

func TestCurrentTask_Expired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 8, 9, 0, 0, 0, time.UTC)
	task := &state.CurrentTask{ExpiresAt: now.Add(24 * time.Hour)}

	assert.False(t, task.Expired(now))
	assert.False(t, task.Expired(now.Add(24*time.Hour)))
	assert.True(t, task.Expired(now.Add(24*time.Hour+time.Second)))
}

func TestCalendarMappings(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 8, 9, 0, 0, 0, time.UTC)
	doc := state.NewDocument()

	t.Run("lookup on empty document", func(t *testing.T) {
		assert.Empty(t, doc.CalendarEventFor(1))
	})

	doc.UpsertCalendarMapping(1, "event-a", now)
	doc.UpsertCalendarMapping(2, "event-b", now)

	t.Run("insert and lookup", func(t *testing.T) {
		assert.Equal(t, "event-a", doc.CalendarEventFor(1))
		assert.Equal(t, "event-b", doc.CalendarEventFor(2))
	})

	t.Run("upsert replaces and stamps last_synced", func(t *testing.T) {
		later := now.Add(time.Hour)
		doc.UpsertCalendarMapping(1, "event-a2", later)

		assert.Equal(t, "event-a2", doc.CalendarEventFor(1))
		require.Len(t, doc.CalendarMappings, 2)
		require.NotNil(t, doc.CalendarMappings[0].LastSynced)
		assert.Equal(t, later, *doc.CalendarMappings[0].LastSynced)
	})

	t.Run("remove", func(t *testing.T) {
		assert.True(t, doc.RemoveCalendarMapping(1))
		assert.False(t, doc.RemoveCalendarMapping(1), "second removal is a no-op")
		assert.Empty(t, doc.CalendarEventFor(1))
		assert.Equal(t, "event-b", doc.CalendarEventFor(2))
	})
}

func TestDocument_RoundTripThroughDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lockPath := filepath.Join(dir, "state.lock")
	statePath := filepath.Join(dir, "state.json")

	timerID := "timer-42"
	started := time.Date(2026, 1, 8, 9, 15, 0, 0, time.UTC)

	err := state.WithLock(context.Background(), lockPath, statePath, func(doc *state.Document) error {
		doc.CurrentTask = &state.CurrentTask{
			ID:        42,
			Title:     "Fix the flaky test",
			StartedAt: started,
			ExpiresAt: started.Add(24 * time.Hour),
			TimerID:   &timerID,
		}
		doc.WorkHours = state.WorkHoursState{Start: "08:30", End: "17:00"}
		return nil
	})
	require.NoError(t, err)

	// The persisted file is well-formed JSON with the expected shape.
	data, err := os.ReadFile(statePath) //#nosec G304 -- test temp dir
	require.NoError(t, err)
	var asMap map[string]any
	require.NoError(t, json.Unmarshal(data, &asMap))
	assert.Contains(t, asMap, "version")
	assert.Contains(t, asMap, "current_task")

	doc, err := state.Load(statePath)
	require.NoError(t, err)
	require.NotNil(t, doc.CurrentTask)
	assert.Equal(t, 42, doc.CurrentTask.ID)
	assert.True(t, doc.CurrentTask.StartedAt.Equal(started))
}
