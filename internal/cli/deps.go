package cli

import (
	"context"
	"os"
	"time"

	"github.com/tasksync/tasksync/internal/calendar"
	"github.com/tasksync/tasksync/internal/clock"
	"github.com/tasksync/tasksync/internal/config"
	"github.com/tasksync/tasksync/internal/devops"
	"github.com/tasksync/tasksync/internal/errors"
	"github.com/tasksync/tasksync/internal/pace"
	"github.com/tasksync/tasksync/internal/state"
)

// TrackerClient is the subset of the work item tracker used by commands.
// This allows mocking in tests.
type TrackerClient interface {
	GetWorkItem(ctx context.Context, id int) (*devops.WorkItem, error)
	QueryWorkItems(ctx context.Context, wiql string) (*devops.WiqlResult, error)
	UpdateWorkItem(ctx context.Context, id int, ops []devops.PatchOp) (*devops.WorkItem, error)
	UpdateWorkItemWithRev(ctx context.Context, id, expectedRev int, ops []devops.PatchOp) (*devops.WorkItem, error)
}

// TimerClient is the subset of the time tracker used by commands.
type TimerClient interface {
	StartTimer(ctx context.Context, workItemID int, comment string) (*pace.Timer, error)
	StopTimer(ctx context.Context, reason int) (*pace.StopTimerResponse, error)
	CurrentTimer(ctx context.Context) (*pace.Timer, error)
}

// CalendarClient is the subset of the calendar API used by commands.
type CalendarClient interface {
	ListEvents(ctx context.Context, start, end time.Time) ([]calendar.Event, error)
	CreateEvent(ctx context.Context, event calendar.Event) (*calendar.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// StateTxn runs fn inside an exclusive state transaction.
type StateTxn func(ctx context.Context, cfg *config.Config, fn func(*state.Document) error) error

// Deps bundles the external dependencies of the commands so tests can swap
// them for fakes.
type Deps struct {
	LoadConfig  func(ctx context.Context) (*config.Config, error)
	NewTracker  func(cfg *config.Config) (TrackerClient, error)
	NewTimer    func(cfg *config.Config) (TimerClient, error)
	NewCalendar func(cfg *config.Config) (CalendarClient, error)
	WithState   StateTxn
	Clock       clock.Clock
}

// DefaultDeps wires the real clients and state store.
func DefaultDeps() *Deps {
	return &Deps{
		LoadConfig: config.Load,
		NewTracker: func(cfg *config.Config) (TrackerClient, error) {
			client, err := devops.NewClient(cfg.DevOps.Organization, cfg.DevOps.Project, cfg.DevOps.PAT)
			if err != nil {
				return nil, err
			}
			if cfg.DevOps.APIURL != "" {
				client = client.WithBaseURL(cfg.DevOps.APIURL)
			}
			return client, nil
		},
		NewTimer: func(cfg *config.Config) (TimerClient, error) {
			client, err := pace.NewClient(cfg.DevOps.Organization, cfg.DevOps.PAT)
			if err != nil {
				return nil, err
			}
			if cfg.DevOps.PaceAPIURL != "" {
				client = client.WithBaseURL(cfg.DevOps.PaceAPIURL)
			}
			return client, nil
		},
		NewCalendar: func(cfg *config.Config) (CalendarClient, error) {
			client := calendar.NewClient(envTokenProvider)
			if cfg.Calendar.APIURL != "" {
				client = client.WithBaseURL(cfg.Calendar.APIURL)
			}
			return client, nil
		},
		WithState: func(ctx context.Context, cfg *config.Config, fn func(*state.Document) error) error {
			lockPath, statePath, err := config.StatePaths(cfg)
			if err != nil {
				return err
			}
			return state.WithLock(ctx, lockPath, statePath, fn)
		},
		Clock: clock.RealClock{},
	}
}

// envTokenProvider reads the calendar bearer token from the environment.
// Interactive token acquisition is handled outside this tool.
func envTokenProvider(context.Context) (string, error) {
	token := os.Getenv("TASKSYNC_GRAPH_TOKEN")
	if token == "" {
		return "", errors.Wrap(errors.ErrEmptyValue, "TASKSYNC_GRAPH_TOKEN not set")
	}
	return token, nil
}
