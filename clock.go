package tempo

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Clock supplies the time sources a Stopwatch samples. Now returns the
// current wall-clock time. CPU returns the CPU time (user plus system)
// consumed by the process so far, or zero when the platform cannot report
// it.
type Clock interface {
	Now() time.Time
	CPU() time.Duration
}

// processClock reads wall time from the system clock and CPU time from the
// current process.
type processClock struct {
	proc *process.Process
}

func newProcessClock() *processClock {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		proc = nil
	}
	return &processClock{proc: proc}
}

func (c *processClock) Now() time.Time {
	return time.Now()
}

func (c *processClock) CPU() time.Duration {
	if c.proc == nil {
		return 0
	}
	times, err := c.proc.Times()
	if err != nil {
		return 0
	}
	return time.Duration((times.User + times.System) * float64(time.Second))
}

// systemClock backs every stopwatch that is not given an explicit clock.
var systemClock Clock = newProcessClock()
