// Package core provides fundamental types shared by the game logic and the
// platform layers: the clock abstraction, indicator colors, semantic display
// frames and device controls. It has no external dependencies so the game
// logic stays pure and testable.
package core

import (
	"sync"
	"time"
)

// Clock is the only source of time for the control loop.
// Deadlines are measured with Now (monotonic for the system clock) and all
// pacing goes through Sleep, so tests can substitute a virtual clock.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall/monotonic clock of the host.
type SystemClock struct{}

// Now returns the current time, carrying a monotonic reading.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep pauses the calling goroutine.
func (SystemClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// Since returns the time elapsed on c since t.
func Since(c Clock, t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// ManualClock is a virtual clock for deterministic runs: Sleep advances
// time instantly instead of blocking.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a virtual clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the virtual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the virtual time by d.
func (c *ManualClock) Sleep(d time.Duration) {
	c.Advance(d)
}

// Advance moves the virtual time forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
