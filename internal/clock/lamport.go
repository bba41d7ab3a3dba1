// Package clock implements a thread-safe Lamport logical clock.
package clock

import "sync"

// Lamport is a monotonically non-decreasing logical counter. It is the
// only component that enforces the monotonicity invariant: every value
// returned by Tick or Observe is strictly greater than every value
// previously returned or observed.
type Lamport struct {
	mu   sync.Mutex
	time uint64
}

// New returns a Lamport clock starting at zero.
func New() *Lamport {
	return &Lamport{}
}

// Now returns the current value without advancing the clock.
func (c *Lamport) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.time
}

// Tick advances the clock by one and returns the new value. Call this
// before emitting a local logical event.
func (c *Lamport) Tick() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.time++
	return c.time
}

// Observe merges a remote timestamp into the clock: time becomes
// max(time, remote) + 1. Call this on every receipt of a logical
// event. Heartbeat RPCs are deliberately not logical events and must
// never call Observe or Tick.
func (c *Lamport) Observe(remote uint64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if remote > c.time {
		c.time = remote
	}
	c.time++
	return c.time
}
