package testutil

import (
	"sync"
	"time"
)

// DeterministicClock provides fixed, manually advanced timestamps for tests.
//
// The engine stamps runs with a now() function; substituting a
// DeterministicClock makes run records and golden snapshots byte-stable
// across test executions.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewDeterministicClock creates a clock pinned at the given instant.
//
// If start is the zero time, the clock starts at 2026-01-01T00:00:00Z.
func NewDeterministicClock(start time.Time) *DeterministicClock {
	if start.IsZero() {
		start = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &DeterministicClock{now: start}
}

// Now returns the current instant without advancing the clock.
//
// Suitable for engine.WithNow: clock.Now stays constant until Advance
// is called, so every run in a test carries a known timestamp.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new instant.
//
// Panics if d is negative: timestamps in run history must never move
// backwards.
func (c *DeterministicClock) Advance(d time.Duration) time.Time {
	if d < 0 {
		panic("DeterministicClock: cannot advance backwards")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
