package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Scheduling
	// ===================
	{
		err: ErrNoSlotAvailable,
		info: ErrorInfo{
			Message: "No free slot of the requested length was found in the next 7 days.",
			Action:  "Shorten the duration, clear calendar conflicts, or widen your work hours.",
		},
	},
	{
		err: ErrInvalidWorkHours,
		info: ErrorInfo{
			Message: "The configured work hours are not valid.",
			Action:  "Set work_hours.start and work_hours.end to HH:MM values with start before end.",
		},
	},
	{
		err: ErrInvalidDuration,
		info: ErrorInfo{
			Message: "The requested duration must be a positive number of minutes.",
			Action:  "Pass a positive --duration value or fix focus_blocks.duration_minutes.",
		},
	},
	// ===================
	// Local state
	// ===================
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "Another tasksync process is holding the state lock.",
			Action:  "Wait for the other invocation to finish, then retry.",
		},
	},
	{
		err: ErrLockUnavailable,
		info: ErrorInfo{
			Message: "The state lock file could not be created or opened.",
			Action:  "Check permissions on the ~/.tasksync directory.",
		},
	},
	{
		err: ErrStatePersist,
		info: ErrorInfo{
			Message: "State changes could not be written to disk. The previous state is intact.",
			Action:  "Check free disk space and permissions, then retry the command.",
		},
	},
	{
		err: ErrStateCorrupted,
		info: ErrorInfo{
			Message: "The state file exists but could not be parsed.",
			Action:  "Inspect or remove ~/.tasksync/state.json and retry.",
		},
	},
	// ===================
	// Remote systems
	// ===================
	{
		err: ErrRevisionConflict,
		info: ErrorInfo{
			Message: "The work item changed on the server since you last read it. Nothing was sent.",
			Action:  "Run 'tasksync item get <id>' to see the current revision, then retry.",
		},
	},
	{
		err: ErrWorkItemNotFound,
		info: ErrorInfo{
			Message: "The tracker has no work item with that ID.",
			Action:  "Verify the ID and that your PAT can access the project.",
		},
	},
	{
		err: ErrMissingPAT,
		info: ErrorInfo{
			Message: "No personal access token is configured.",
			Action:  "Set devops.pat in ~/.tasksync/config.yaml or export TASKSYNC_DEVOPS_PAT.",
		},
	},
	{
		err: ErrTimerNotRunning,
		info: ErrorInfo{
			Message: "No timer is currently running.",
			Action:  "Start one with 'tasksync start <id>'.",
		},
	},
	{
		err: ErrNoCurrentTask,
		info: ErrorInfo{
			Message: "No task is currently active.",
			Action:  "Start one with 'tasksync start <id>'.",
		},
	},
}

// UserMessage returns a user-friendly message for the given error.
// Falls back to the raw error string when no mapping exists.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info.Message
		}
	}
	return err.Error()
}

// Actionable returns a suggested action for the given error, or empty when
// no action is known.
func Actionable(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info.Action
		}
	}
	return ""
}
