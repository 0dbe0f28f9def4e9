// Package testutil provides shared test doubles for tempo.
//
// It should only be imported by test files (*_test.go).
package testutil

import (
	"errors"

	"github.com/focusfoundry/tempo/internal/kvstore"
)

// Mock errors for simulating failure scenarios in tests.
var (
	// ErrMockPersist simulates a store write failure.
	ErrMockPersist = errors.New("persist failed")

	// ErrMockNetwork simulates a network failure.
	ErrMockNetwork = errors.New("network error")
)

// FailingStore wraps a working store and fails every Set after Allow
// successful writes. Reads pass through untouched, so tests can seed
// state normally and then flip persistence failures on.
type FailingStore struct {
	Inner kvstore.Store

	// Allow is the number of Sets to let through before failing.
	Allow int

	sets int
}

// NewFailingStore wraps inner, failing all writes immediately.
func NewFailingStore(inner kvstore.Store) *FailingStore {
	return &FailingStore{Inner: inner}
}

// Get delegates to the inner store.
func (s *FailingStore) Get(key string, out any) bool {
	return s.Inner.Get(key, out)
}

// Set delegates until the allowance is spent, then returns ErrMockPersist.
func (s *FailingStore) Set(key string, v any) error {
	if s.sets >= s.Allow {
		return ErrMockPersist
	}
	s.sets++
	return s.Inner.Set(key, v)
}

// Subscribe delegates to the inner store.
func (s *FailingStore) Subscribe(key string, fn func()) func() {
	return s.Inner.Subscribe(key, fn)
}

// NotifyExternal delegates to the inner store.
func (s *FailingStore) NotifyExternal(key string) {
	s.Inner.NotifyExternal(key)
}

var _ kvstore.Store = (*FailingStore)(nil)
