package tempo

import (
	"bytes"
	"testing"
	"time"

	"github.com/MeKo-Tech/tempo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryStartStop(t *testing.T) {
	clock := testutil.NewFakeClock()
	reg := NewRegistryWithClock(clock)

	require.NoError(t, reg.Start("load"))
	assert.True(t, reg.Running("load"))
	clock.Advance(1500 * time.Millisecond)
	require.NoError(t, reg.Stop("load"))

	sec, err := reg.Seconds("load")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, sec, 1e-9)
}

func TestRegistryErrors(t *testing.T) {
	reg := NewRegistryWithClock(testutil.NewFakeClock())

	err := reg.Stop("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown timer")

	_, err = reg.Seconds("missing")
	require.Error(t, err)

	require.NoError(t, reg.Start("busy"))
	_, err = reg.Seconds("busy")
	assert.ErrorIs(t, err, ErrRunning)

	err = reg.Start("busy")
	assert.ErrorIs(t, err, ErrRunning)
}

func TestRegistryStopAllClearAll(t *testing.T) {
	clock := testutil.NewFakeClock()
	reg := NewRegistryWithClock(clock)

	names := []string{"alpha", "beta", "gamma"}
	for _, name := range names {
		require.NoError(t, reg.Start(name))
	}
	clock.Advance(time.Second)
	reg.StopAll()

	for _, name := range names {
		assert.False(t, reg.Running(name))
		sec, err := reg.Seconds(name)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sec, 1e-9)
	}

	reg.ClearAll()
	for _, name := range names {
		sec, err := reg.Seconds(name)
		require.NoError(t, err)
		assert.Zero(t, sec)
	}
	assert.Equal(t, names, reg.Names())
}

func TestRegistryTrackReentrant(t *testing.T) {
	clock := testutil.NewFakeClock()
	reg := NewRegistryWithClock(clock)

	var inner func(depth int)
	inner = func(depth int) {
		defer reg.Track("recurse")()
		clock.Advance(100 * time.Millisecond)
		if depth > 0 {
			inner(depth - 1)
		}
	}
	inner(3)

	sec, err := reg.Seconds("recurse")
	require.NoError(t, err)
	assert.InDelta(t, 0.4, sec, 1e-9)

	snap := reg.Collect()["recurse"]
	assert.Equal(t, uint64(1), snap.Calls, "only the outermost pair is measured")
}

func TestRegistryCollect(t *testing.T) {
	clock := testutil.NewFakeClock()
	reg := NewRegistryWithClock(clock)

	require.NoError(t, reg.Start("a"))
	clock.Advance(2 * time.Second)
	clock.AdvanceCPU(time.Second)
	require.NoError(t, reg.Stop("a"))
	require.NoError(t, reg.Start("b"))

	snaps := reg.Collect()
	require.Len(t, snaps, 2)
	assert.InDelta(t, 2.0, snaps["a"].WallSeconds, 1e-9)
	assert.InDelta(t, 1.0, snaps["a"].CPUSeconds, 1e-9)
	assert.False(t, snaps["a"].Running)
	assert.True(t, snaps["b"].Running)
}

func TestRegistryReport(t *testing.T) {
	clock := testutil.NewFakeClock()
	reg := NewRegistryWithClock(clock)

	require.NoError(t, reg.Start("alpha"))
	clock.Advance(1500 * time.Millisecond)
	require.NoError(t, reg.Stop("alpha"))
	require.NoError(t, reg.Start("beta"))
	clock.Advance(500 * time.Millisecond)
	require.NoError(t, reg.Stop("beta"))

	var buf bytes.Buffer
	require.NoError(t, reg.Report(&buf))

	out := buf.String()
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
	assert.Contains(t, out, "1.500")
	assert.Contains(t, out, "0.500")
}

func TestTimedDefaultRegistry(t *testing.T) {
	name := "timed_default_registry_test"
	Default().Clear(name)

	Timed(name, func() {
		time.Sleep(time.Millisecond)
	})

	sec, err := Default().Seconds(name)
	require.NoError(t, err)
	assert.Positive(t, sec)
	assert.Equal(t, uint64(1), Default().Collect()[name].Calls)
}
