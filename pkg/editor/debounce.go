package editor

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiescence window for change notifications.
const DefaultDebounce = 32 * time.Millisecond

// timer is the part of *time.Timer the debouncer needs.
type timer interface {
	Stop() bool
}

// afterFunc schedules f after d. Tests replace it with a manual clock.
type afterFunc func(d time.Duration, f func()) timer

func realAfterFunc(d time.Duration, f func()) timer {
	return time.AfterFunc(d, f)
}

// debouncer runs fn once after a burst of Trigger calls has been quiet for
// delay. fn runs on the timer goroutine.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	after   afterFunc
	fn      func()
	t       timer
	gen     uint64
	stopped bool
}

func newDebouncer(delay time.Duration, after afterFunc, fn func()) *debouncer {
	if after == nil {
		after = realAfterFunc
	}
	return &debouncer{delay: delay, after: after, fn: fn}
}

// Trigger restarts the quiescence window.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.t != nil {
		d.t.Stop()
	}
	d.gen++
	gen := d.gen
	d.t = d.after(d.delay, func() { d.fire(gen) })
}

func (d *debouncer) fire(gen uint64) {
	d.mu.Lock()
	// A timer that lost the race with a later Trigger or with Stop must
	// not deliver.
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.t = nil
	d.mu.Unlock()
	d.fn()
}

// Stop discards any pending run. Later Triggers are ignored.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.t != nil {
		d.t.Stop()
		d.t = nil
	}
}
