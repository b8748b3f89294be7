package platform

import "sync"

// noopBridge is a NativeBridge that accepts all calls without side effects.
type noopBridge struct{}

func (noopBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	return DefaultCodec.Encode(nil)
}
func (noopBridge) StartEventStream(string) error { return nil }
func (noopBridge) StopEventStream(string) error  { return nil }

// SetupTestBridge installs a no-op native bridge and synchronous dispatch
// function for testing. The cleanup function should be testing.T.Cleanup or
// equivalent; it registers a teardown that calls ResetForTest.
//
//	platform.SetupTestBridge(t.Cleanup)
func SetupTestBridge(cleanup func(func())) {
	SetNativeBridge(noopBridge{})
	RegisterDispatch(func(cb func()) { cb() })
	cleanup(ResetForTest)
}

// SetupQueuedDispatch installs a dispatch function that queues callbacks
// instead of running them. Call the returned drain function to run every
// queued callback, including ones queued while draining. Useful for tests
// that need to observe state between a background completion and its
// UI-thread delivery.
func SetupQueuedDispatch(cleanup func(func())) (drain func() int) {
	var (
		mu    sync.Mutex
		queue []func()
	)
	RegisterDispatch(func(cb func()) {
		mu.Lock()
		queue = append(queue, cb)
		mu.Unlock()
	})
	cleanup(ResetForTest)
	return func() int {
		n := 0
		for {
			mu.Lock()
			if len(queue) == 0 {
				mu.Unlock()
				return n
			}
			cb := queue[0]
			queue = queue[1:]
			mu.Unlock()
			cb()
			n++
		}
	}
}
