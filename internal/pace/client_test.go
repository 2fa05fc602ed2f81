package pace_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasksync/tasksync/internal/clock"
	"github.com/tasksync/tasksync/internal/errors"
	"github.com/tasksync/tasksync/internal/pace"
)

func newTestClient(t *testing.T, handler http.Handler) *pace.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := pace.NewClient("org", "testpat")
	require.NoError(t, err)
	return client.WithBaseURL(srv.URL)
}

func TestNewClientRequiresPAT(t *testing.T) {
	t.Parallel()

	_, err := pace.NewClient("org", "")
	assert.ErrorIs(t, err, errors.ErrMissingPAT)
}

func TestStartTimer(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/_apis/api/tracking/client/startTracking", r.URL.Path)

		var body pace.StartTimerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 456, body.WorkItemID)
		assert.Equal(t, "Working on feature", body.Comment)

		fmt.Fprint(w, `{
			"id": "timer-abc-123",
			"workItemId": 456,
			"startedAt": "2026-01-07T18:00:00Z",
			"comment": "Working on feature"
		}`)
	}))

	timer, err := client.StartTimer(context.Background(), 456, "Working on feature")
	require.NoError(t, err)
	assert.Equal(t, "timer-abc-123", timer.ID)
	assert.Equal(t, 456, timer.WorkItemID)
	assert.Equal(t, time.Date(2026, 1, 7, 18, 0, 0, 0, time.UTC), timer.StartedAt)
}

func TestStopTimer(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_apis/api/tracking/client/stopTracking/0", r.URL.Path)
		fmt.Fprint(w, `{"worklogId": 789, "duration": 3600, "workItemId": 456}`)
	}))

	stopped, err := client.StopTimer(context.Background(), pace.StopReasonCompleted)
	require.NoError(t, err)
	assert.Equal(t, 789, stopped.WorklogID)
	assert.Equal(t, 3600, stopped.Duration)
	assert.Equal(t, 456, stopped.WorkItemID)
}

func TestCurrentTimer(t *testing.T) {
	t.Run("running", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/_apis/api/tracking/client/current", r.URL.Path)
			fmt.Fprint(w, `{"id": "timer-1", "workItemId": 42, "startedAt": "2026-01-08T09:00:00Z"}`)
		}))

		timer, err := client.CurrentTimer(context.Background())
		require.NoError(t, err)
		require.NotNil(t, timer)
		assert.Equal(t, 42, timer.WorkItemID)
	})

	t.Run("none running returns nil", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `null`)
		}))

		timer, err := client.CurrentTimer(context.Background())
		require.NoError(t, err)
		assert.Nil(t, timer)
	})
}

func TestCreateWorklog(t *testing.T) {
	now := time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_apis/worklogs", r.URL.Path)

		var body pace.CreateWorklogRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 42, body.WorkItemID)
		assert.Equal(t, 1800, body.Duration)
		assert.True(t, body.Timestamp.Equal(now))

		fmt.Fprint(w, `{
			"id": 5,
			"workItemId": 42,
			"userId": "user-1",
			"duration": 1800,
			"timestamp": "2026-01-08T12:00:00Z"
		}`)
	})).WithClock(clock.Fixed{T: now})

	worklog, err := client.CreateWorklog(context.Background(), 42, 30*time.Minute, "")
	require.NoError(t, err)
	assert.Equal(t, 5, worklog.ID)
	assert.Equal(t, 1800, worklog.Duration)
}

func TestListWorklogs(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_apis/worklogs", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("startDate"))
		assert.NotEmpty(t, r.URL.Query().Get("endDate"))
		fmt.Fprint(w, `[
			{"id": 1, "workItemId": 42, "userId": "u", "duration": 600, "timestamp": "2026-01-08T09:00:00Z"},
			{"id": 2, "workItemId": 43, "userId": "u", "duration": 900, "timestamp": "2026-01-08T10:00:00Z"}
		]`)
	}))

	start := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
	worklogs, err := client.ListWorklogs(context.Background(), start, start.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, worklogs, 2)
	assert.Equal(t, 600, worklogs[0].Duration)
}

func TestAPIErrorStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))

	_, err := client.CurrentTimer(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrAPIStatus)
	assert.Contains(t, err.Error(), "401")
}
