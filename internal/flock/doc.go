// Package flock provides cross-platform file locking primitives.
//
// The state package uses these to serialize read-modify-write transactions
// over the session state document across processes. Locks are exclusive,
// advisory, and non-blocking; callers that want a bounded wait retry in a
// loop (see state.WithLock). A process that exits while holding a lock
// releases it automatically.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
//	if err := flock.TryExclusive(file.Fd()); err != nil {
//	    // Lock is held elsewhere.
//	}
//	defer flock.Release(file.Fd())
package flock
