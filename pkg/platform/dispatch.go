package platform

import (
	"context"
	"sync"
)

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the dispatch function used to schedule callbacks on the UI thread.
// This should be called once by the host during initialization.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI thread.
// Returns true if the callback was successfully scheduled, false if no dispatch function
// is registered or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// Loop is a minimal UI thread for hosts without a native event loop.
// Callbacks handed to Post run one at a time, in order, on the goroutine
// that called Run.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	stopped bool
	wake    chan struct{}
}

// NewLoop creates a loop. capacity sizes the initial queue; the queue
// grows as needed.
func NewLoop(capacity int) *Loop {
	if capacity <= 0 {
		capacity = 64
	}
	return &Loop{
		queue: make([]func(), 0, capacity),
		wake:  make(chan struct{}, 1),
	}
}

// Post enqueues a callback. It never blocks, so the loop's own callbacks
// may post too. Callbacks posted after Run has returned are dropped.
func (l *Loop) Post(callback func()) {
	if callback == nil {
		return
	}
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, callback)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) pop() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	cb := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return cb
}

// Run processes callbacks until ctx is done. Callbacks still queued when
// it returns are discarded.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	l.stopped = false
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cb := l.pop(); cb != nil {
			cb()
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Install registers the loop as the process dispatch function.
func (l *Loop) Install() {
	RegisterDispatch(l.Post)
}
