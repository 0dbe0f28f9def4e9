//go:build windows

package flock

import "golang.org/x/sys/windows"

// Windows LockFileEx/UnlockFileEx API parameters.
// See: https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-lockfileex
const (
	lockReserved  = 0 // reserved, must be zero
	lockBytesLow  = 1 // lock a single byte, which covers the whole advisory lock
	lockBytesHigh = 0
)

// Exclusive acquires an exclusive non-blocking lock on the file
// descriptor. Returns an error if the lock is already held elsewhere.
func Exclusive(fd uintptr) error {
	return windows.LockFileEx(
		windows.Handle(fd),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}

// ExclusiveWait acquires an exclusive lock, blocking until the current
// holder releases it.
func ExclusiveWait(fd uintptr) error {
	return windows.LockFileEx(
		windows.Handle(fd),
		windows.LOCKFILE_EXCLUSIVE_LOCK,
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}

// Unlock releases the lock on the file descriptor.
func Unlock(fd uintptr) error {
	return windows.UnlockFileEx(
		windows.Handle(fd),
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}
