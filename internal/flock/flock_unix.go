//go:build unix

package flock

import "syscall"

// TryExclusive attempts to acquire an exclusive lock on the file descriptor
// without blocking. Returns an error if another process holds the lock.
func TryExclusive(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX|syscall.LOCK_NB)
}

// Release drops the lock held on the file descriptor.
func Release(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_UN)
}
