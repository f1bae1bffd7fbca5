package tempo

import "sync/atomic"

// WidthTracker records the widest numeric field rendered so far by the
// timers sharing it, so their reports line up in columns. The watermark
// only ever grows. Workers that should not align with each other use
// separate trackers.
type WidthTracker struct {
	width atomic.Int64
}

// NewWidthTracker returns a tracker with a zero watermark.
func NewWidthTracker() *WidthTracker {
	return &WidthTracker{}
}

// Propose offers a candidate width and returns the (possibly raised)
// watermark. The stored value never decreases.
func (w *WidthTracker) Propose(n int) int {
	for {
		cur := w.width.Load()
		if int64(n) <= cur {
			return int(cur)
		}
		if w.width.CompareAndSwap(cur, int64(n)) {
			return n
		}
	}
}

// Width returns the current watermark.
func (w *WidthTracker) Width() int {
	return int(w.width.Load())
}

// defaultWidths aligns every timer that does not carry its own tracker.
var defaultWidths = NewWidthTracker()

// ProposeOutputWidth pre-seeds or raises the shared alignment width so
// that a family of timers about to be printed together line up before any
// of them has rendered. The shared value never decreases.
func ProposeOutputWidth(n int) {
	defaultWidths.Propose(n)
}
