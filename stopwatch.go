// Package tempo provides composable wall-clock and CPU-time stopwatches for
// instrumenting program sections, with decorated, column-aligned textual
// reporting.
package tempo

import (
	"errors"
	"strconv"
	"time"
)

// State violations surfaced by Stopwatch operations.
var (
	ErrRunning    = errors.New("stopwatch is running")
	ErrNotRunning = errors.New("stopwatch is not running")
)

// Stopwatch accumulates elapsed wall-clock and CPU time across repeated
// start/stop cycles. It is not safe for concurrent use; each instance is
// meant to be driven by a single goroutine.
type Stopwatch struct {
	clock     Clock
	running   bool
	startWall time.Time
	startCPU  time.Duration
	wall      time.Duration
	cpu       time.Duration
	calls     uint64
}

// NewStopwatch returns a stopped stopwatch backed by the system clock.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{clock: systemClock}
}

// NewStopwatchWithClock returns a stopped stopwatch backed by the given
// clock. Tests use this to supply a fake time source.
func NewStopwatchWithClock(c Clock) *Stopwatch {
	return &Stopwatch{clock: c}
}

// Start begins a new measurement interval.
func (s *Stopwatch) Start() error {
	if s.running {
		return ErrRunning
	}
	s.running = true
	s.startWall = s.clock.Now()
	s.startCPU = s.clock.CPU()
	return nil
}

// Stop ends the current interval and folds it into the accumulated totals.
func (s *Stopwatch) Stop() error {
	if !s.running {
		return ErrNotRunning
	}
	s.wall += s.clock.Now().Sub(s.startWall)
	s.cpu += s.clock.CPU() - s.startCPU
	s.calls++
	s.running = false
	return nil
}

// Clear resets the accumulated totals, the call count and the running
// state.
func (s *Stopwatch) Clear() {
	*s = Stopwatch{clock: s.clock}
}

// Running reports whether a measurement interval is currently open.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Calls returns the number of completed start/stop cycles.
func (s *Stopwatch) Calls() uint64 {
	return s.calls
}

// Seconds returns the accumulated wall-clock time in seconds. It fails
// while the stopwatch is running; stop it first.
func (s *Stopwatch) Seconds() (float64, error) {
	if s.running {
		return 0, ErrRunning
	}
	return s.wall.Seconds(), nil
}

// CPUSeconds returns the accumulated CPU time in seconds. It fails while
// the stopwatch is running.
func (s *Stopwatch) CPUSeconds() (float64, error) {
	if s.running {
		return 0, ErrRunning
	}
	return s.cpu.Seconds(), nil
}

// Elapsed returns the accumulated wall-clock time including the open
// interval, if any. Unlike Seconds it never fails.
func (s *Stopwatch) Elapsed() time.Duration {
	if s.running {
		return s.wall + s.clock.Now().Sub(s.startWall)
	}
	return s.wall
}

// CPUElapsed returns the accumulated CPU time including the open interval.
func (s *Stopwatch) CPUElapsed() time.Duration {
	if s.running {
		return s.cpu + s.clock.CPU() - s.startCPU
	}
	return s.cpu
}

// Measure runs fn inside a start/stop pair.
func (s *Stopwatch) Measure(fn func()) error {
	if err := s.Start(); err != nil {
		return err
	}
	fn()
	return s.Stop()
}

// String renders the undecorated accumulated wall time, e.g. "1.235 sec".
// Timer overrides this with its decorated report.
func (s *Stopwatch) String() string {
	return strconv.FormatFloat(s.Elapsed().Seconds(), 'f', DefaultPrecision, 64) + " sec"
}
