// Package state persists the local session document that records what the
// user is doing right now. The document is a single JSON file; every
// read-modify-write goes through WithLock, which serializes access across
// processes with an OS-level advisory lock and persists atomically.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/tasksync/tasksync/internal/constants"
	"github.com/tasksync/tasksync/internal/errors"
)

// Directory and file permission constants.
const (
	dirPerm  = 0o750 // Secure directory permissions
	filePerm = 0o600 // Secure file permissions
)

// Document is the persisted session state. Unknown fields in the JSON are
// ignored and missing fields default, so older binaries can read documents
// written by newer ones.
type Document struct {
	// Version tags the schema the document was written with.
	Version string `json:"version"`

	// CurrentTask is the task the user is working on, nil when idle.
	CurrentTask *CurrentTask `json:"current_task"`

	// LastSync records when each remote system was last synchronized.
	LastSync SyncTimes `json:"last_sync"`

	// WorkHours snapshots the work-hours configuration the session runs under.
	WorkHours WorkHoursState `json:"work_hours"`

	// CalendarMappings links work items to the calendar events created for them.
	CalendarMappings []CalendarMapping `json:"calendar_mappings,omitempty"`
}

// CurrentTask is the snapshot of the active task.
type CurrentTask struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	StartedAt time.Time `json:"started_at"`
	ExpiresAt time.Time `json:"expires_at"`
	TimerID   *string   `json:"timer_id"`
}

// Expired reports whether the task's expiry has passed at the given time.
func (c *CurrentTask) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// SyncTimes records per-backend last-sync timestamps.
type SyncTimes struct {
	DevOps   *time.Time `json:"devops"`
	Pace     *time.Time `json:"pace"`
	Calendar *time.Time `json:"calendar"`
}

// WorkHoursState snapshots the configured daily window.
type WorkHoursState struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CalendarMapping links a work item to the calendar event scheduled for it.
type CalendarMapping struct {
	WorkItemID int        `json:"work_item_id"`
	EventID    string     `json:"event_id"`
	CreatedAt  time.Time  `json:"created_at"`
	LastSynced *time.Time `json:"last_synced,omitempty"`
}

// NewDocument returns a document with default values, used when no state
// file exists yet.
func NewDocument() *Document {
	return &Document{
		Version: constants.StateSchemaVersion,
	}
}

// UpsertCalendarMapping adds or refreshes the mapping between a work item
// and its calendar event.
func (d *Document) UpsertCalendarMapping(workItemID int, eventID string, now time.Time) {
	for i := range d.CalendarMappings {
		if d.CalendarMappings[i].WorkItemID == workItemID {
			d.CalendarMappings[i].EventID = eventID
			d.CalendarMappings[i].LastSynced = &now
			return
		}
	}
	d.CalendarMappings = append(d.CalendarMappings, CalendarMapping{
		WorkItemID: workItemID,
		EventID:    eventID,
		CreatedAt:  now,
	})
}

// CalendarEventFor returns the calendar event ID mapped to the work item,
// or empty when none is mapped.
func (d *Document) CalendarEventFor(workItemID int) string {
	for _, m := range d.CalendarMappings {
		if m.WorkItemID == workItemID {
			return m.EventID
		}
	}
	return ""
}

// RemoveCalendarMapping drops the mapping for a work item. Reports whether
// a mapping was removed.
func (d *Document) RemoveCalendarMapping(workItemID int) bool {
	kept := d.CalendarMappings[:0]
	for _, m := range d.CalendarMappings {
		if m.WorkItemID != workItemID {
			kept = append(kept, m)
		}
	}
	removed := len(kept) < len(d.CalendarMappings)
	d.CalendarMappings = kept
	return removed
}

// Load reads the state document from path. A missing or empty file yields a
// fresh default document rather than an error; a present but unparsable file
// yields ErrStateCorrupted.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from trusted config
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, errors.Wrap(err, "failed to read state file")
	}

	if len(data) == 0 {
		return NewDocument(), nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrStateCorrupted, "failed to parse %s: %v", path, err)
	}
	if doc.Version == "" {
		doc.Version = constants.StateSchemaVersion
	}
	return &doc, nil
}

// save persists the document via atomic replace: serialize to a temporary
// file in the same directory, sync, then rename over path. A failure leaves
// the previous on-disk document intact.
func save(doc *Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.ErrStatePersist, "failed to serialize state: %v", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return errors.Wrapf(errors.ErrStatePersist, "failed to create state directory: %v", err)
		}
	}

	if err := atomicWrite(path, data); err != nil {
		return errors.Wrapf(errors.ErrStatePersist, "%v", err)
	}
	return nil
}

// atomicWrite writes data to a file atomically using write-then-rename.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "failed to write data")
	}

	// Data must reach disk before the rename makes it visible.
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "failed to sync file")
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "failed to close file")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "failed to rename file")
	}

	return nil
}
