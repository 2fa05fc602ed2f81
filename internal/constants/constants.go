// Package constants provides centralized constant values used throughout tasksync.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// File names used by tasksync for local persistence.
const (
	// StateFileName is the name of the JSON document that stores session state,
	// including the current task snapshot and calendar mappings.
	StateFileName = "state.json"

	// StateLockFileName is the name of the zero-content marker file used for
	// OS-level advisory locking of the state document. It stores no data.
	StateLockFileName = "state.lock"

	// GlobalConfigName is the name of the global tasksync configuration file.
	// This file is located in the tasksync home directory.
	GlobalConfigName = "config.yaml"

	// CLILogFileName is the name of the rotating CLI log file.
	// This file is located in ~/.tasksync/logs/tasksync.log
	CLILogFileName = "tasksync.log"
)

// Directory names used by tasksync for organizing data.
const (
	// TasksyncHome is the hidden directory name where tasksync stores all its data.
	// This directory is created in the user's home directory.
	TasksyncHome = ".tasksync"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Scheduling defaults.
const (
	// SlotAlignment is the granularity slot start times are aligned to.
	// Slots always begin at :00, :15, :30 or :45.
	SlotAlignment = 15 * time.Minute

	// SearchHorizonDays bounds the slot search. A calendar with no free block
	// of the requested length within this many days yields ErrNoSlotAvailable.
	// This keeps the search finite; it is a policy choice, not a hard limit.
	SearchHorizonDays = 7

	// DefaultFocusDuration is the default length of a scheduled focus block.
	DefaultFocusDuration = 45 * time.Minute

	// DefaultWorkDayStart is the default start of the working-hours window.
	DefaultWorkDayStart = "08:30"

	// DefaultWorkDayEnd is the default end of the working-hours window.
	DefaultWorkDayEnd = "17:00"
)

// State defaults.
const (
	// StateSchemaVersion is the version tag written into new state documents.
	StateSchemaVersion = "1.0.0"

	// DefaultTaskExpiry is how long a started task remains "current" before
	// it is considered stale.
	DefaultTaskExpiry = 24 * time.Hour
)

// Lock acquisition configuration.
const (
	// LockTimeout is the maximum duration to wait for the state file lock.
	// A bounded wait surfaces a clear error when another holder hangs.
	LockTimeout = 5 * time.Second

	// LockRetryInterval is how long to sleep between lock attempts.
	LockRetryInterval = 50 * time.Millisecond
)

// Log rotation configuration for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the maximum number of old log files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum number of days to retain old log files.
	LogMaxAgeDays = 30

	// LogCompress determines if rotated log files should be compressed.
	LogCompress = true
)

// Remote API configuration.
const (
	// DefaultHTTPTimeout is the timeout applied to every outbound REST call.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of retries for transient API failures.
	DefaultMaxRetries = 3

	// RetryBaseDelay is the initial delay for exponential backoff.
	// Delays grow as RetryBaseDelay * 2^attempt.
	RetryBaseDelay = 100 * time.Millisecond
)
