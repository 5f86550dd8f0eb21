// Package testutil holds deterministic stand-ins for the engine's clock and
// run ID generator, so that scenario runs and golden files are reproducible.
package testutil

import (
	"slices"
	"sync"
)

// DeterministicClock is a resettable logical clock that remembers every seq
// it stamped, so a test can check the order evaluations were recorded in.
// It satisfies engine.Sequencer.
type DeterministicClock struct {
	mu     sync.Mutex
	start  int64
	issued []int64
}

// NewDeterministicClock creates a clock whose first Next returns 1.
func NewDeterministicClock() *DeterministicClock {
	return NewDeterministicClockAt(0)
}

// NewDeterministicClockAt creates a clock whose first Next returns start+1.
func NewDeterministicClockAt(start int64) *DeterministicClock {
	return &DeterministicClock{start: start}
}

// Next stamps and returns the seq after Current.
func (c *DeterministicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	seq := c.current() + 1
	c.issued = append(c.issued, seq)
	return seq
}

// Current returns the last seq stamped, or the start position.
func (c *DeterministicClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current()
}

func (c *DeterministicClock) current() int64 {
	if n := len(c.issued); n > 0 {
		return c.issued[n-1]
	}
	return c.start
}

// Issued returns the seq values stamped since creation or the last Reset.
func (c *DeterministicClock) Issued() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.issued)
}

// Reset forgets every stamp, so the next Next returns start+1 again.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued = nil
}
