package editor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-drift/codeview/pkg/engine"
	"github.com/go-drift/codeview/pkg/engine/headless"
	"github.com/go-drift/codeview/pkg/errors"
	"github.com/go-drift/codeview/pkg/platform"
)

type mountNode int64

func (n mountNode) MountID() int64 { return int64(n) }

// manualClock hands out timers that only fire on Advance.
type manualClock struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	wasPending := !t.stopped
	t.stopped = true
	return wasPending
}

func (c *manualClock) after(d time.Duration, f func()) timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{f: f}
	c.pending = append(c.pending, t)
	return t
}

// Advance fires every timer that has not been stopped and returns how many
// fired.
func (c *manualClock) Advance() int {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()
	n := 0
	for _, t := range pending {
		if t.stopped {
			continue
		}
		t.stopped = true
		t.f()
		n++
	}
	return n
}

// errorLog records reported errors and panics.
type errorLog struct {
	mu     sync.Mutex
	errs   []*errors.EditorError
	panics []*errors.PanicError
}

func (l *errorLog) HandleError(err *errors.EditorError) {
	l.mu.Lock()
	l.errs = append(l.errs, err)
	l.mu.Unlock()
}

func (l *errorLog) HandlePanic(err *errors.PanicError) {
	l.mu.Lock()
	l.panics = append(l.panics, err)
	l.mu.Unlock()
}

func (l *errorLog) kinds() []errors.ErrorKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	var kinds []errors.ErrorKind
	for _, err := range l.errs {
		kinds = append(kinds, err.Kind)
	}
	return kinds
}

func (l *errorLog) panicCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.panics)
}

// harness wires a controller to a headless engine, a queued UI thread and
// a manual debounce clock.
type harness struct {
	t      *testing.T
	eng    *headless.Engine
	loader *engine.Loader
	clock  *manualClock
	errs   *errorLog
	drain  func() int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:     t,
		eng:   headless.New(),
		clock: &manualClock{},
		errs:  &errorLog{},
	}
	h.loader = engine.NewLoader(func(context.Context, engine.Config) (engine.Engine, error) {
		return h.eng, nil
	})
	h.drain = platform.SetupQueuedDispatch(t.Cleanup)
	errors.SetHandler(h.errs)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

func (h *harness) options() []Option {
	return []Option{WithLoader(h.loader), withAfterFunc(h.clock.after)}
}

// awaitDispatch waits for at least one callback to reach the UI thread and
// runs everything queued.
func (h *harness) awaitDispatch() {
	h.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		if h.drain() > 0 {
			return
		}
		if time.Now().After(deadline) {
			h.t.Fatal("timed out waiting for a UI thread callback")
		}
		time.Sleep(time.Millisecond)
	}
}

// mount mounts c on node 1 and waits for the engine.
func (h *harness) mount(c interface {
	Mount()
	SetMountNode(engine.MountNode)
}) {
	h.t.Helper()
	c.SetMountNode(mountNode(1))
	c.Mount()
	h.awaitDispatch()
}

func editorID(t *testing.T, ed engine.Editor) string {
	t.Helper()
	he, ok := ed.(*headless.Editor)
	if !ok {
		t.Fatalf("editor type = %T, want *headless.Editor", ed)
	}
	return he.ID()
}

func diffEditorID(t *testing.T, ed engine.DiffEditor) string {
	t.Helper()
	hd, ok := ed.(*headless.DiffEditor)
	if !ok {
		t.Fatalf("diff editor type = %T, want *headless.DiffEditor", ed)
	}
	return hd.ID()
}

// endOf is an empty range at the end of m.
func endOf(m engine.Model) engine.Range {
	r := m.FullRange()
	return engine.Range{
		StartLineNumber: r.EndLineNumber,
		StartColumn:     r.EndColumn,
		EndLineNumber:   r.EndLineNumber,
		EndColumn:       r.EndColumn,
	}
}
