package clock

import (
	"sync"
	"time"
)

// Clock provides an abstraction for time operations
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// Since returns the duration since the given time
	Since(t time.Time) time.Duration
}

// Real uses the actual system time
type Real struct{}

// NewReal creates a new Real clock
func NewReal() Real {
	return Real{}
}

// Now returns the current system time
func (Real) Now() time.Time {
	return time.Now()
}

// Since returns the duration since the given time
func (Real) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// Simulated allows time manipulation in tests. Safe for concurrent use.
type Simulated struct {
	mu      sync.RWMutex
	current time.Time
}

// NewSimulated creates a simulated clock starting at the given time
func NewSimulated(start time.Time) *Simulated {
	return &Simulated{current: start}
}

// Now returns the simulated current time
func (c *Simulated) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Since returns the duration since the given time
func (c *Simulated) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Advance moves the simulated time forward by the given duration
func (c *Simulated) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

// Set sets the simulated time to a specific value
func (c *Simulated) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}
