package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tasksync/tasksync/internal/calendar"
	"github.com/tasksync/tasksync/internal/clock"
	"github.com/tasksync/tasksync/internal/config"
	"github.com/tasksync/tasksync/internal/devops"
	"github.com/tasksync/tasksync/internal/errors"
	"github.com/tasksync/tasksync/internal/pace"
	"github.com/tasksync/tasksync/internal/state"
)

func errWorkItemMissing(id int) error {
	return errors.Wrapf(errors.ErrWorkItemNotFound, "%d", id)
}

func revConflict(id, expected, actual int) error {
	return &errors.RevisionConflictError{ID: id, Expected: expected, Actual: actual}
}

// testNow is the reference instant used across command tests.
// A Thursday, 09:07 UTC.
var testNow = time.Date(2026, 1, 8, 9, 7, 0, 0, time.UTC)

// fakeTracker is an in-memory TrackerClient. afterGet, when set, runs after
// every fetch; tests use it to simulate concurrent edits landing between a
// read and the guarded update.
type fakeTracker struct {
	items       map[int]*devops.WorkItem
	patchCalls  int
	lastPatched []devops.PatchOp
	afterGet    func()
}

func (f *fakeTracker) GetWorkItem(_ context.Context, id int) (*devops.WorkItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, errWorkItemMissing(id)
	}
	cp := *item
	if f.afterGet != nil {
		f.afterGet()
	}
	return &cp, nil
}

func (f *fakeTracker) QueryWorkItems(context.Context, string) (*devops.WiqlResult, error) {
	refs := make([]devops.ItemRef, 0, len(f.items))
	for id := range f.items {
		refs = append(refs, devops.ItemRef{ID: id})
	}
	return &devops.WiqlResult{QueryType: "flat", WorkItems: refs}, nil
}

func (f *fakeTracker) UpdateWorkItem(_ context.Context, id int, ops []devops.PatchOp) (*devops.WorkItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, errWorkItemMissing(id)
	}
	f.patchCalls++
	f.lastPatched = ops
	item.Rev++
	for _, op := range ops {
		field := op.Path[len("/fields/"):]
		item.Fields[field] = op.Value
	}
	cp := *item
	return &cp, nil
}

func (f *fakeTracker) UpdateWorkItemWithRev(ctx context.Context, id, expectedRev int, ops []devops.PatchOp) (*devops.WorkItem, error) {
	item, err := f.GetWorkItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Rev != expectedRev {
		return nil, revConflict(id, expectedRev, item.Rev)
	}
	return f.UpdateWorkItem(ctx, id, ops)
}

// fakeTimer is an in-memory TimerClient.
type fakeTimer struct {
	running    *pace.Timer
	starts     int
	stops      int
	lastReason int
}

func (f *fakeTimer) StartTimer(_ context.Context, workItemID int, comment string) (*pace.Timer, error) {
	f.starts++
	f.running = &pace.Timer{
		ID:         "timer-1",
		WorkItemID: workItemID,
		StartedAt:  testNow,
		Comment:    comment,
	}
	return f.running, nil
}

func (f *fakeTimer) StopTimer(_ context.Context, reason int) (*pace.StopTimerResponse, error) {
	f.stops++
	f.lastReason = reason
	stopped := &pace.StopTimerResponse{WorklogID: 1, Duration: 3600, WorkItemID: 0}
	if f.running != nil {
		stopped.WorkItemID = f.running.WorkItemID
	}
	f.running = nil
	return stopped, nil
}

func (f *fakeTimer) CurrentTimer(context.Context) (*pace.Timer, error) {
	return f.running, nil
}

// fakeCalendar is an in-memory CalendarClient.
type fakeCalendar struct {
	events  []calendar.Event
	created []calendar.Event
	deleted []string
}

func (f *fakeCalendar) ListEvents(context.Context, time.Time, time.Time) ([]calendar.Event, error) {
	return f.events, nil
}

func (f *fakeCalendar) CreateEvent(_ context.Context, event calendar.Event) (*calendar.Event, error) {
	event.ID = "evt-created"
	f.created = append(f.created, event)
	return &event, nil
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, eventID string) error {
	f.deleted = append(f.deleted, eventID)
	return nil
}

// testEnv bundles the fakes and the state directory behind a Deps.
type testEnv struct {
	deps     *Deps
	cfg      *config.Config
	tracker  *fakeTracker
	timer    *fakeTimer
	calendar *fakeCalendar
}

// newTestEnv builds a Deps wired to fakes, with real locked state
// transactions against a temp directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Keep logger file output away from the real home directory.
	t.Setenv("HOME", t.TempDir())

	cfg := config.DefaultConfig()
	cfg.State.DirOverride = t.TempDir()
	cfg.DevOps.Organization = "org"
	cfg.DevOps.Project = "project"
	cfg.DevOps.PAT = "testpat"

	env := &testEnv{
		cfg: cfg,
		tracker: &fakeTracker{items: map[int]*devops.WorkItem{
			42: {
				ID:  42,
				Rev: 3,
				Fields: map[string]any{
					devops.FieldTitle: "Implement login",
					devops.FieldState: "Active",
					devops.FieldType:  "User Story",
				},
			},
		}},
		timer:    &fakeTimer{},
		calendar: &fakeCalendar{},
	}

	env.deps = &Deps{
		LoadConfig: func(context.Context) (*config.Config, error) { return cfg, nil },
		NewTracker: func(*config.Config) (TrackerClient, error) { return env.tracker, nil },
		NewTimer:   func(*config.Config) (TimerClient, error) { return env.timer, nil },
		NewCalendar: func(*config.Config) (CalendarClient, error) {
			return env.calendar, nil
		},
		WithState: func(ctx context.Context, cfg *config.Config, fn func(*state.Document) error) error {
			lockPath, statePath, err := config.StatePaths(cfg)
			if err != nil {
				return err
			}
			return state.WithLock(ctx, lockPath, statePath, fn)
		},
		Clock: clock.Fixed{T: testNow},
	}
	return env
}

// run executes the CLI against the test env and returns stdout.
func (env *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, env.deps, BuildInfo{})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// loadStateDoc reads the state document the env's commands wrote.
func (env *testEnv) loadStateDoc(t *testing.T) *state.Document {
	t.Helper()
	_, statePath, err := config.StatePaths(env.cfg)
	require.NoError(t, err)
	doc, err := state.Load(statePath)
	require.NoError(t, err)
	return doc
}
