package engine

import "sync/atomic"

// Clock stamps evaluations with consecutive seq values within a run.
// Ordering never depends on wall time, so a replay sees the same seq values.
type Clock struct {
	last atomic.Int64
}

// NewClock creates a clock for a fresh run; its first stamp is 1.
func NewClock() *Clock {
	return NewClockAt(0)
}

// NewClockAt creates a clock continuing a run whose last stamp was last.
func NewClockAt(last int64) *Clock {
	c := &Clock{}
	c.last.Store(last)
	return c
}

// Next returns the stamp for the next evaluation.
func (c *Clock) Next() int64 {
	return c.last.Add(1)
}

// Current returns the last stamp handed out.
func (c *Clock) Current() int64 {
	return c.last.Load()
}
