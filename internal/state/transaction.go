package state

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/tasksync/tasksync/internal/constants"
	"github.com/tasksync/tasksync/internal/ctxutil"
	"github.com/tasksync/tasksync/internal/errors"
	"github.com/tasksync/tasksync/internal/flock"
)

// WithLock runs fn inside an exclusive cross-process transaction over the
// state document.
//
// The sequence is: acquire an advisory lock on lockPath (creating it if
// absent), load the document from statePath (defaults when absent), invoke
// fn with the in-memory document, and persist atomically if fn succeeded.
// When fn returns an error the document is discarded unpersisted and the
// error propagates. The lock is released on every exit path.
//
// Lock acquisition waits at most LockTimeout, polling in a retry loop so
// that ctx cancellation is honored while waiting. A holder that crashes
// releases the lock automatically on process exit; one that merely hangs
// surfaces ErrLockTimeout here instead of blocking forever.
//
// Two processes calling WithLock on the same paths observe strictly
// serialized execution: the second to acquire sees the first's fully
// persisted write, never a partial one.
func WithLock(ctx context.Context, lockPath, statePath string, fn func(*Document) error) error {
	lockFile, err := acquireLock(ctx, lockPath)
	if err != nil {
		return err
	}
	defer func() { _ = releaseLock(lockFile) }()

	doc, err := Load(statePath)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	return save(doc, statePath)
}

// acquireLock opens (creating if needed) the lock file and acquires an
// exclusive lock with a bounded wait.
func acquireLock(ctx context.Context, lockPath string) (*os.File, error) {
	if dir := filepath.Dir(lockPath); dir != "" {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, errors.Wrapf(errors.ErrLockUnavailable, "failed to create lock directory: %v", err)
		}
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, filePerm) //#nosec G302,G304 -- lock file needs write access, path comes from trusted config
	if err != nil {
		return nil, errors.Wrapf(errors.ErrLockUnavailable, "failed to open lock file %s: %v", lockPath, err)
	}

	deadline := time.Now().Add(constants.LockTimeout)
	for {
		if err := ctxutil.Canceled(ctx); err != nil {
			_ = f.Close()
			return nil, err
		}

		if err := flock.TryExclusive(f.Fd()); err == nil {
			return f, nil
		}

		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, errors.Wrapf(errors.ErrLockTimeout,
				"could not lock %s within %s", lockPath, constants.LockTimeout)
		}

		time.Sleep(constants.LockRetryInterval)
	}
}

// releaseLock drops the lock and closes the file.
func releaseLock(f *os.File) error {
	if f == nil {
		return nil
	}
	if err := flock.Release(f.Fd()); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "failed to release lock")
	}
	return f.Close()
}
