package errors

import (
	"errors"
	"fmt"
)

// ErrRevisionConflict is the sentinel for optimistic-concurrency failures.
// Use errors.Is(err, ErrRevisionConflict) to detect a conflict regardless of
// the revision details attached to it.
var ErrRevisionConflict = errors.New("revision conflict")

// RevisionConflictError reports that a remote work item changed between the
// caller's last read and the attempted update. The update was never sent.
//
// The caller can only recover by re-fetching the item and re-deciding with
// the new revision; a blind retry would apply the patch against the wrong
// base state.
type RevisionConflictError struct {
	// ID is the work item identifier.
	ID int
	// Expected is the revision the caller assumed.
	Expected int
	// Actual is the revision the server currently holds.
	Actual int
}

// Error implements the error interface.
func (e *RevisionConflictError) Error() string {
	return fmt.Sprintf("revision conflict on work item %d: expected rev %d, server has rev %d",
		e.ID, e.Expected, e.Actual)
}

// Is reports whether target is ErrRevisionConflict, so that
// errors.Is(err, ErrRevisionConflict) matches any RevisionConflictError.
func (e *RevisionConflictError) Is(target error) bool {
	return target == ErrRevisionConflict
}
