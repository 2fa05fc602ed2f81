// Package errors provides centralized error handling for tasksync.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrNoSlotAvailable indicates the slot search exhausted its horizon
	// without finding a free block of the requested length.
	ErrNoSlotAvailable = errors.New("no available slot found")

	// ErrInvalidWorkHours indicates a malformed working-hours value
	// (bad HH:MM string, out-of-range hour or minute, or end before start).
	ErrInvalidWorkHours = errors.New("invalid work hours")

	// ErrInvalidDuration indicates a zero or negative requested duration.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidInterval indicates a busy interval whose end does not
	// follow its start.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInvalidTimestamp indicates an event timestamp that could not be
	// parsed in any supported format.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrLockTimeout indicates the state file lock could not be acquired
	// within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrLockUnavailable indicates the lock file could not be created or
	// opened (permissions, missing directory).
	ErrLockUnavailable = errors.New("lock file unavailable")

	// ErrStatePersist indicates the state document could not be written
	// after a transaction completed. The on-disk document remains the
	// pre-transaction version.
	ErrStatePersist = errors.New("state persist failed")

	// ErrStateCorrupted indicates the state file exists but could not be
	// parsed as JSON.
	ErrStateCorrupted = errors.New("state file corrupted")

	// ErrNoCurrentTask indicates an operation that requires an active task
	// was invoked with none recorded.
	ErrNoCurrentTask = errors.New("no active task")

	// ErrTimerNotRunning indicates a stop was requested with no timer active.
	ErrTimerNotRunning = errors.New("no timer running")

	// ErrWorkItemNotFound indicates the tracker has no work item with the
	// requested ID.
	ErrWorkItemNotFound = errors.New("work item not found")

	// ErrAPIStatus indicates a remote API responded with a non-success
	// HTTP status.
	ErrAPIStatus = errors.New("unexpected API status")

	// ErrMissingPAT indicates no personal access token was configured for
	// the tracker or timer APIs.
	ErrMissingPAT = errors.New("personal access token not configured")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidDevOps indicates an invalid tracker configuration value.
	ErrConfigInvalidDevOps = errors.New("invalid devops configuration")

	// ErrConfigInvalidWorkHours indicates an invalid work-hours configuration value.
	ErrConfigInvalidWorkHours = errors.New("invalid work hours configuration")

	// ErrConfigInvalidFocus indicates an invalid focus-block configuration value.
	ErrConfigInvalidFocus = errors.New("invalid focus block configuration")

	// ErrConfigInvalidState indicates an invalid state configuration value.
	ErrConfigInvalidState = errors.New("invalid state configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")
)
