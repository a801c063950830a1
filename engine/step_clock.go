package engine

import (
	"sync"
	"time"
)

// StepClock is a manual Clock for driving the loop deterministically
// Every Now reading moves the clock forward by step, so each frame of Run
// sees the same dt regardless of wall time; step 0 freezes it
type StepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{now: start, step: step}
}

// Now returns the current reading, then advances by step
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Advance moves the clock by d without taking a reading
func (c *StepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
