package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystem_Now(t *testing.T) {
	t.Parallel()
	c := System{}

	before := time.Now()
	got := c.Now()
	after := time.Now()

	assert.False(t, got.Before(before), "clock.Now() should not return time before actual time.Now()")
	assert.False(t, got.After(after), "clock.Now() should not return time after actual time.Now()")
}

func TestMock(t *testing.T) {
	t.Parallel()
	fixed := time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC)
	m := NewMock(fixed)

	assert.Equal(t, fixed, m.Now())
	assert.Equal(t, fixed, m.Now(), "repeated calls return the same time")

	m.Advance(90 * time.Second)
	assert.Equal(t, fixed.Add(90*time.Second), m.Now())

	later := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	m.Set(later)
	assert.Equal(t, later, m.Now())
}
