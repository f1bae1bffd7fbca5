package tempo

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadMemoryStats(t *testing.T) {
	stats := ReadMemoryStats()
	assert.Positive(t, stats.AllocBytes)
	assert.Positive(t, stats.TotalAllocBytes)
	assert.Positive(t, stats.SysBytes)

	str := stats.String()
	assert.Contains(t, str, "Alloc:")
	assert.Contains(t, str, "KB")
}

func TestBenchmark(t *testing.T) {
	calls := 0
	result := Benchmark("spin", 5, func() error {
		calls++
		time.Sleep(time.Millisecond)
		return nil
	})

	assert.NoError(t, result.Err)
	assert.Equal(t, 5, calls)
	assert.Equal(t, 5, result.Iterations)
	assert.GreaterOrEqual(t, result.Wall, 5*time.Millisecond)

	str := result.String()
	assert.Contains(t, str, "spin")
	assert.Contains(t, str, "5 iterations")
}

func TestBenchmarkError(t *testing.T) {
	boom := errors.New("boom")
	result := Benchmark("failing", 10, func() error {
		return boom
	})

	assert.ErrorIs(t, result.Err, boom)
	assert.Equal(t, 0, result.Iterations)
	assert.Contains(t, result.String(), "ERROR")
}
