//go:build windows

package flock

import "golang.org/x/sys/windows"

// Windows LockFileEx/UnlockFileEx API parameters.
// See: https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-lockfileex
const (
	lockReserved  = 0 // Reserved parameter, must be zero
	lockBytesLow  = 1 // Low-order 32 bits of byte range to lock (1 byte = entire file)
	lockBytesHigh = 0 // High-order 32 bits of byte range to lock
)

// TryExclusive attempts to acquire an exclusive lock on the file descriptor
// without blocking. Returns an error if another process holds the lock.
func TryExclusive(fd uintptr) error {
	return windows.LockFileEx(
		windows.Handle(fd),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}

// Release drops the lock held on the file descriptor.
func Release(fd uintptr) error {
	return windows.UnlockFileEx(
		windows.Handle(fd),
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}
