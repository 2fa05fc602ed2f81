// Package pace provides a client for the 7pace Timetracker REST API: timer
// start/stop/current plus worklog creation and listing. It shares the
// tracker's personal access token for authentication.
package pace

import "time"

// Stop reasons accepted by the stopTracking endpoint.
const (
	StopReasonCompleted = 0
	StopReasonSwitched  = 1
)

// Timer is a running tracking session.
type Timer struct {
	ID         string    `json:"id"`
	WorkItemID int       `json:"workItemId"`
	StartedAt  time.Time `json:"startedAt"`
	Comment    string    `json:"comment,omitempty"`
}

// Worklog is a completed time entry. Duration is in seconds.
type Worklog struct {
	ID         int       `json:"id"`
	WorkItemID int       `json:"workItemId"`
	UserID     string    `json:"userId"`
	Duration   int       `json:"duration"`
	Timestamp  time.Time `json:"timestamp"`
	Comment    string    `json:"comment,omitempty"`
}

// StartTimerRequest is the body for the startTracking endpoint.
type StartTimerRequest struct {
	WorkItemID int    `json:"workItemId"`
	Comment    string `json:"comment,omitempty"`
}

// StopTimerResponse is the body returned by stopTracking. Duration is the
// total tracked seconds of the closed session.
type StopTimerResponse struct {
	WorklogID  int `json:"worklogId"`
	Duration   int `json:"duration"`
	WorkItemID int `json:"workItemId"`
}

// CreateWorklogRequest is the body for manual worklog creation. Duration is
// in seconds.
type CreateWorklogRequest struct {
	WorkItemID int       `json:"workItemId"`
	Duration   int       `json:"duration"`
	Timestamp  time.Time `json:"timestamp"`
	Comment    string    `json:"comment,omitempty"`
}
