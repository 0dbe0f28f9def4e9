// Package flock provides cross-platform advisory file locking.
//
// The key-value store uses it to serialize writers across tempo
// processes: each Set acquires the store's lock file before the
// write-then-rename, so two commands running at once cannot interleave
// a read-modify-write on the same key.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
//	if err := flock.ExclusiveWait(file.Fd()); err != nil {
//	    // lock unavailable
//	}
//	defer flock.Unlock(file.Fd())
package flock
