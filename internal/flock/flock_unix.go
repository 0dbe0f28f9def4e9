//go:build unix

package flock

import "syscall"

// Exclusive acquires an exclusive non-blocking lock on the file
// descriptor. Returns an error if the lock is already held elsewhere.
func Exclusive(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX|syscall.LOCK_NB)
}

// ExclusiveWait acquires an exclusive lock, blocking until the current
// holder releases it.
func ExclusiveWait(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX)
}

// Unlock releases the lock on the file descriptor.
func Unlock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_UN)
}
