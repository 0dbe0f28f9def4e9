// Package clock provides an abstraction for time operations to improve
// testability. Instead of calling time.Now() directly, the task repository,
// gamification engine, and pomodoro engine take a Clock which can be
// substituted with a Mock in tests to control time-dependent behavior.
package clock

import (
	"sync"
	"time"
)

// Clock is an interface for time operations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// System implements Clock using the actual system time.
type System struct{}

// Now returns the current time from the system clock.
func (System) Now() time.Time {
	return time.Now()
}

// Mock is a Clock implementation for tests. It returns a settable fixed
// time and is safe for concurrent use. The zero value returns the zero
// time; use NewMock or Set before handing it to code under test.
type Mock struct {
	mu sync.Mutex
	t  time.Time
}

// NewMock creates a Mock pinned to the given time.
func NewMock(t time.Time) *Mock {
	return &Mock{t: t}
}

// Now returns the mock's current time.
func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.t
}

// Set pins the mock to a new time.
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t = t
}

// Advance moves the mock forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t = m.t.Add(d)
}

// Ensure implementations satisfy Clock.
var (
	_ Clock = System{}
	_ Clock = (*Mock)(nil)
)
