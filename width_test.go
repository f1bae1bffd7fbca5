package tempo

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidthTrackerMonotonic(t *testing.T) {
	w := NewWidthTracker()

	assert.Equal(t, 5, w.Propose(5))
	assert.Equal(t, 5, w.Propose(3))
	assert.Equal(t, 9, w.Propose(9))
	assert.Equal(t, 9, w.Propose(9))
	assert.Equal(t, 9, w.Width())
}

func TestWidthTrackerIsolation(t *testing.T) {
	a := NewWidthTracker()
	b := NewWidthTracker()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			a.Propose(i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			b.Propose(i)
		}
	}()
	wg.Wait()

	assert.Equal(t, 9, a.Width())
	assert.Equal(t, 19, b.Width())
}

func TestWidthTrackerConcurrentPropose(t *testing.T) {
	w := NewWidthTracker()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			w.Propose(n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, w.Width())
}

func TestProposeOutputWidth(t *testing.T) {
	before := defaultWidths.Width()
	ProposeOutputWidth(before + 4)
	assert.GreaterOrEqual(t, defaultWidths.Width(), before+4)

	// Proposals never lower the shared watermark.
	ProposeOutputWidth(1)
	assert.GreaterOrEqual(t, defaultWidths.Width(), before+4)
}
