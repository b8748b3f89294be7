package editor

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CollapsesBurst(t *testing.T) {
	clock := &manualClock{}
	var runs int
	d := newDebouncer(DefaultDebounce, clock.after, func() { runs++ })

	for i := 0; i < 5; i++ {
		d.Trigger()
	}
	if n := clock.Advance(); n != 1 {
		t.Fatalf("fired = %d, want 1", n)
	}
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}

	d.Trigger()
	clock.Advance()
	if runs != 2 {
		t.Errorf("runs after second burst = %d, want 2", runs)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	clock := &manualClock{}
	var runs int
	d := newDebouncer(DefaultDebounce, clock.after, func() { runs++ })

	d.Trigger()
	d.Stop()
	d.Trigger()
	clock.Advance()
	if runs != 0 {
		t.Errorf("runs after stop = %d, want 0", runs)
	}
}

func TestDebouncer_StaleTimerIgnored(t *testing.T) {
	var (
		runs   int
		timers []func()
	)
	// Timers that ignore Stop, like a time.AfterFunc whose callback has
	// already started.
	after := func(d time.Duration, f func()) timer {
		timers = append(timers, f)
		return stubbornTimer{}
	}
	d := newDebouncer(DefaultDebounce, after, func() { runs++ })

	d.Trigger()
	d.Trigger()
	timers[0]()
	if runs != 0 {
		t.Fatalf("superseded timer ran the callback")
	}
	timers[1]()
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}

type stubbornTimer struct{}

func (stubbornTimer) Stop() bool { return false }

func TestDebouncer_RealTimer(t *testing.T) {
	done := make(chan struct{})
	var runs atomic.Int32
	d := newDebouncer(5*time.Millisecond, nil, func() {
		if runs.Add(1) == 1 {
			close(done)
		}
	})
	d.Trigger()
	d.Trigger()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced callback never ran")
	}
	time.Sleep(20 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("runs = %d, want 1", got)
	}
}

func TestWithDebounce(t *testing.T) {
	lc := newLifecycle("test", []Option{WithDebounce(0)})
	if lc.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want default", lc.debounce)
	}
	lc = newLifecycle("test", []Option{WithDebounce(time.Second)})
	if lc.debounce != time.Second {
		t.Errorf("debounce = %v, want 1s", lc.debounce)
	}
}
