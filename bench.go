package tempo

import (
	"fmt"
	"runtime"
	"time"
)

// MemoryStats holds memory statistics captured around a benchmark run.
type MemoryStats struct {
	AllocBytes      uint64  // Currently allocated bytes
	TotalAllocBytes uint64  // Total allocated bytes (cumulative)
	SysBytes        uint64  // Total bytes from system
	NumGC           uint32  // Number of GC runs
	GCCPUFraction   float64 // Fraction of CPU time spent in GC
}

// ReadMemoryStats returns current memory statistics.
func ReadMemoryStats() MemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemoryStats{
		AllocBytes:      m.Alloc,
		TotalAllocBytes: m.TotalAlloc,
		SysBytes:        m.Sys,
		NumGC:           m.NumGC,
		GCCPUFraction:   m.GCCPUFraction,
	}
}

// String returns a formatted string representation of memory stats.
func (m MemoryStats) String() string {
	return fmt.Sprintf("Alloc: %d KB, Total: %d KB, Sys: %d KB, GC: %d (%.2f%% CPU)",
		m.AllocBytes/1024,
		m.TotalAllocBytes/1024,
		m.SysBytes/1024,
		m.NumGC,
		m.GCCPUFraction*100)
}

// BenchmarkResult holds the outcome of a timed benchmark run.
type BenchmarkResult struct {
	Name         string
	Wall         time.Duration
	CPU          time.Duration
	Iterations   int
	MemoryBefore MemoryStats
	MemoryAfter  MemoryStats
	Err          error
}

// String returns a formatted string representation of the benchmark
// result.
func (r BenchmarkResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: ERROR - %v", r.Name, r.Err)
	}

	memDiff := int64(r.MemoryAfter.AllocBytes) - int64(r.MemoryBefore.AllocBytes) //nolint:gosec // G115: safe conversion for display
	avg := r.Wall
	if r.Iterations > 0 {
		avg = r.Wall / time.Duration(r.Iterations)
	}

	return fmt.Sprintf("%s: %d iterations, avg: %v, total: %v, cpu: %v, mem: %+d KB",
		r.Name, r.Iterations, avg, r.Wall, r.CPU, memDiff/1024)
}

// Benchmark runs fn the given number of iterations under a stopwatch and
// reports accumulated wall and CPU time together with memory statistics
// captured around the run. The run aborts on the first error from fn.
func Benchmark(name string, iterations int, fn func() error) BenchmarkResult {
	result := BenchmarkResult{
		Name:         name,
		MemoryBefore: ReadMemoryStats(),
	}

	sw := NewStopwatch()
	_ = sw.Start()
	for i := 0; i < iterations; i++ {
		if err := fn(); err != nil {
			result.Iterations = i
			result.Err = err
			return result
		}
	}
	_ = sw.Stop()

	result.Iterations = iterations
	result.Wall = sw.Elapsed()
	result.CPU = sw.CPUElapsed()
	result.MemoryAfter = ReadMemoryStats()
	return result
}
