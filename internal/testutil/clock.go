// Package testutil provides shared helpers for tests, including a
// manually advanced clock for stopwatch tests.
package testutil

import (
	"sync"
	"time"
)

// FakeClock is a deterministic time source. Wall and CPU time only move
// when the test advances them.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
	cpu time.Duration
}

// NewFakeClock returns a clock fixed at an arbitrary instant with zero
// accumulated CPU time.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake wall-clock time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// CPU returns the accumulated fake CPU time.
func (c *FakeClock) CPU() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cpu
}

// Advance moves wall-clock time forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AdvanceCPU moves accumulated CPU time forward by d.
func (c *FakeClock) AdvanceCPU(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cpu += d
}
