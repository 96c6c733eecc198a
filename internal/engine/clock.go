package engine

import "sync/atomic"

// Clock is a monotonic counter for session-local run ordinals.
//
// Every executed run is stamped with a strictly increasing ordinal from
// this clock. The ordinal never enters the trace digest or the store;
// it exists so logs and tests can order the runs of one engine session
// without trusting wall clocks.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific ordinal.
// Used to resume numbering from a known position.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next ordinal and increments the clock.
// Calls are linearizable - each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current ordinal without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
