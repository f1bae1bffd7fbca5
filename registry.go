package tempo

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/olekukonko/tablewriter"
)

// Registry is a set of named stopwatches that can be started and stopped
// from anywhere in a program and reported together. All methods are safe
// for concurrent use.
type Registry struct {
	mu      sync.Mutex
	clock   Clock
	watches map[string]*Stopwatch
}

// NewRegistry returns an empty registry backed by the system clock.
func NewRegistry() *Registry {
	return NewRegistryWithClock(systemClock)
}

// NewRegistryWithClock returns an empty registry whose stopwatches use the
// given clock. Tests use this to supply a fake time source.
func NewRegistryWithClock(c Clock) *Registry {
	return &Registry{clock: c, watches: make(map[string]*Stopwatch)}
}

// get returns the named stopwatch, creating it on first use. Callers hold
// r.mu.
func (r *Registry) get(name string) *Stopwatch {
	sw, ok := r.watches[name]
	if !ok {
		sw = NewStopwatchWithClock(r.clock)
		r.watches[name] = sw
	}
	return sw
}

// Start begins an interval on the named stopwatch, creating it on first
// use.
func (r *Registry) Start(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.get(name).Start(); err != nil {
		return fmt.Errorf("start %q: %w", name, err)
	}
	return nil
}

// Stop ends the open interval on the named stopwatch.
func (r *Registry) Stop(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sw, ok := r.watches[name]
	if !ok {
		return fmt.Errorf("stop %q: unknown timer", name)
	}
	if err := sw.Stop(); err != nil {
		return fmt.Errorf("stop %q: %w", name, err)
	}
	return nil
}

// Clear resets the named stopwatch if it exists.
func (r *Registry) Clear(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sw, ok := r.watches[name]; ok {
		sw.Clear()
	}
}

// Seconds returns the accumulated wall-clock seconds of the named
// stopwatch.
func (r *Registry) Seconds(name string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sw, ok := r.watches[name]
	if !ok {
		return 0, fmt.Errorf("seconds %q: unknown timer", name)
	}
	sec, err := sw.Seconds()
	if err != nil {
		return 0, fmt.Errorf("seconds %q: %w", name, err)
	}
	return sec, nil
}

// Running reports whether the named stopwatch exists and has an open
// interval.
func (r *Registry) Running(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	sw, ok := r.watches[name]
	return ok && sw.Running()
}

// StopAll closes the open interval on every running stopwatch.
func (r *Registry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sw := range r.watches {
		if sw.Running() {
			_ = sw.Stop()
		}
	}
}

// ClearAll resets every stopwatch in the registry.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sw := range r.watches {
		sw.Clear()
	}
}

// Names returns the registered timer names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.watches))
	for name := range r.watches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Collect snapshots every stopwatch in the registry.
func (r *Registry) Collect() map[string]Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]Snapshot, len(r.watches))
	for name, sw := range r.watches {
		out[name] = sw.Snapshot()
	}
	return out
}

// Track starts the named stopwatch and returns a function that stops it,
// for use with defer:
//
//	defer reg.Track("load")()
//
// If the stopwatch is already running, for example from a recursive call,
// the returned function is a no-op so that only the outermost pair is
// measured.
func (r *Registry) Track(name string) func() {
	r.mu.Lock()
	sw := r.get(name)
	if sw.Running() {
		r.mu.Unlock()
		return func() {}
	}
	_ = sw.Start()
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		_ = sw.Stop()
		r.mu.Unlock()
	}
}

// Report writes a column-aligned summary of all timers, sorted by name.
// Running timers report their live totals.
func (r *Registry) Report(w io.Writer) error {
	collected := r.Collect()
	names := make([]string, 0, len(collected))
	for name := range collected {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(w)
	table.Header("Timer", "Wall (s)", "CPU (s)", "Calls")
	for _, name := range names {
		snap := collected[name]
		table.Append(name,
			strconv.FormatFloat(snap.WallSeconds, 'f', DefaultPrecision, 64),
			strconv.FormatFloat(snap.CPUSeconds, 'f', DefaultPrecision, 64),
			strconv.FormatUint(snap.Calls, 10))
	}
	return table.Render()
}

// defaultRegistry is the process-wide registry behind Default and Timed.
var defaultRegistry = NewRegistry()

// Default returns the process-wide timer registry.
func Default() *Registry {
	return defaultRegistry
}

// Timed runs fn while the named stopwatch in the default registry is
// running.
func Timed(name string, fn func()) {
	defer defaultRegistry.Track(name)()
	fn()
}
