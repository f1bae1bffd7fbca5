package tempo

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Process-wide report defaults. Set them during program initialization,
// before timers are used from multiple goroutines.
var (
	// DefaultFormat is the report template used by timers constructed
	// without an explicit format. See Timer for the recognized
	// placeholders.
	DefaultFormat = "%w sec wall, %c sec cpu"

	// DefaultPrecision is the number of digits rendered after the decimal
	// point by timers constructed without an explicit precision.
	DefaultPrecision = 3
)

const (
	defaultBegin = "[ "
	defaultClose = " ]"
)

// Timer decorates a Stopwatch with a bracketed, width-aligned textual
// report.
//
// The report template recognizes these placeholders:
//
//	%w  accumulated wall-clock seconds (the field padded for alignment)
//	%c  accumulated CPU seconds
//	%p  CPU time as a percentage of wall time
//	%n  number of completed start/stop cycles
//	%%  a literal percent sign
//
// A timer instance is not safe for concurrent use, but the width tracker
// it shares with other timers is.
type Timer struct {
	*Stopwatch

	begin       string
	close       string
	format      string
	precision   int
	staticWidth bool
	widths      *WidthTracker
}

// Option configures a Timer during construction.
type Option func(*Timer)

// WithDelimiters sets the opening and closing delimiter strings. Empty
// strings are valid and produce a report with no visible bracketing.
func WithDelimiters(begin, close string) Option {
	return func(t *Timer) {
		t.begin = begin
		t.close = close
	}
}

// WithPrecision sets the number of digits rendered after the decimal
// point. Zero renders the numeric fields as integers with no decimal
// separator. Negative values are a programmer error.
func WithPrecision(p int) Option {
	return func(t *Timer) {
		t.precision = p
	}
}

// WithStaticWidth enables or disables padding of the wall field to the
// shared width watermark.
func WithStaticWidth(on bool) Option {
	return func(t *Timer) {
		t.staticWidth = on
	}
}

// WithFormat sets an explicit report template for this timer only. It
// also disables static width, since the template's shape is no longer
// predictable; a later WithStaticWidth(true) re-enables alignment.
func WithFormat(format string) Option {
	return func(t *Timer) {
		t.format = format
		t.staticWidth = false
	}
}

// WithWidthTracker aligns this timer against the given tracker instead of
// the package-wide one.
func WithWidthTracker(w *WidthTracker) Option {
	return func(t *Timer) {
		t.widths = w
	}
}

// WithClock backs the underlying stopwatch with the given clock.
func WithClock(c Clock) Option {
	return func(t *Timer) {
		t.clock = c
	}
}

// New returns a stopped timer. Without options it reports with the "[ "
// and " ]" delimiters, the package default format and precision, and
// static-width alignment enabled.
func New(opts ...Option) *Timer {
	t := &Timer{
		Stopwatch:   NewStopwatch(),
		begin:       defaultBegin,
		close:       defaultClose,
		precision:   DefaultPrecision,
		staticWidth: true,
		widths:      defaultWidths,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// StopAndReturn stops the underlying stopwatch and returns the timer, so
// the report can be requested in the same expression:
//
//	fmt.Println(t.StopAndReturn())
//
// A stop on an already-stopped timer is a no-op here; call Stop directly
// to observe the error.
func (t *Timer) StopAndReturn() *Timer {
	_ = t.Stop()
	return t
}

// Begin returns the configured opening delimiter.
func (t *Timer) Begin() string {
	return t.begin
}

// Close returns the configured closing delimiter.
func (t *Timer) Close() string {
	return t.close
}

// Render composes the decorated report from the accumulated totals. It
// fails only while the underlying stopwatch is still running.
func (t *Timer) Render() (string, error) {
	wall, err := t.Seconds()
	if err != nil {
		return "", err
	}
	cpu, err := t.CPUSeconds()
	if err != nil {
		return "", err
	}
	return t.compose(wall, cpu, t.calls), nil
}

// String renders the report over the live totals, including any open
// interval, so printing a timer always succeeds.
func (t *Timer) String() string {
	return t.compose(t.Elapsed().Seconds(), t.CPUElapsed().Seconds(), t.calls)
}

// Format renders an arbitrary measurement snapshot with this timer's
// delimiters, template, precision and width policy. It does not touch the
// timer's own accumulated state, only the shared width watermark.
func (t *Timer) Format(snap Snapshot) string {
	return t.compose(snap.WallSeconds, snap.CPUSeconds, snap.Calls)
}

// compose builds the final report: the wall field is rendered at the
// configured precision, padded with leading spaces to the shared watermark
// when static width is enabled, substituted into the template and wrapped
// in the delimiters.
func (t *Timer) compose(wall, cpu float64, calls uint64) string {
	body := strconv.FormatFloat(wall, 'f', t.precision, 64)
	if t.staticWidth {
		width := t.widths.Propose(len(body))
		if pad := width - len(body); pad > 0 {
			body = strings.Repeat(" ", pad) + body
		}
	}
	return t.begin + t.expand(body, wall, cpu, calls) + t.close
}

// expand substitutes the recognized placeholders into the template.
func (t *Timer) expand(wallField string, wall, cpu float64, calls uint64) string {
	format := t.format
	if format == "" {
		format = DefaultFormat
	}

	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 == len(format) {
			b.WriteByte(format[i])
			continue
		}
		i++
		switch format[i] {
		case 'w':
			b.WriteString(wallField)
		case 'c':
			b.WriteString(strconv.FormatFloat(cpu, 'f', t.precision, 64))
		case 'p':
			percent := 0.0
			if wall > 0 {
				percent = cpu / wall * 100
			}
			b.WriteString(strconv.FormatFloat(percent, 'f', 1, 64))
		case 'n':
			b.WriteString(strconv.FormatUint(calls, 10))
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteByte(format[i])
		}
	}
	return b.String()
}

// MarshalJSON serializes the timer as its measurement snapshot. The
// delimiters, format and width settings are presentation-only and are not
// part of the persisted state.
func (t *Timer) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Snapshot())
}

// MarshalYAML serializes the timer as its measurement snapshot.
func (t *Timer) MarshalYAML() (any, error) {
	return t.Snapshot(), nil
}
