package editor

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/codeview/pkg/engine"
	"github.com/go-drift/codeview/pkg/engine/native"
	"github.com/go-drift/codeview/pkg/platform"
)

// editsBridge accepts every native call and records the edit batches sent
// to editor views. It never echoes content changes back.
type editsBridge struct {
	mu      sync.Mutex
	batches [][]engine.EditOperation
}

func (b *editsBridge) InvokeMethod(channel, method string, argsData []byte) ([]byte, error) {
	if method == "invokeViewMethod" {
		var args struct {
			Method string                 `json:"method"`
			Edits  []engine.EditOperation `json:"edits"`
		}
		if err := json.Unmarshal(argsData, &args); err == nil && args.Method == "executeEdits" {
			b.mu.Lock()
			b.batches = append(b.batches, args.Edits)
			b.mu.Unlock()
		}
	}
	return platform.DefaultCodec.Encode(nil)
}

func (b *editsBridge) StartEventStream(string) error { return nil }
func (b *editsBridge) StopEventStream(string) error  { return nil }

func (b *editsBridge) ranges() []engine.Range {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []engine.Range
	for _, batch := range b.batches {
		for _, e := range batch {
			out = append(out, e.Range)
		}
	}
	return out
}

func TestController_NativeConsecutiveValues(t *testing.T) {
	h := newHarness(t)
	bridge := &editsBridge{}
	platform.SetNativeBridge(bridge)

	loader := engine.NewLoader(native.Boot)
	c := New(Props{Value: "a", Language: "go"}, WithLoader(loader), withAfterFunc(h.clock.after))
	h.mount(c)
	if got := c.State(); got != StateSynced {
		t.Fatalf("state = %v, want synced", got)
	}
	eng := c.Engine().(*native.Engine)
	t.Cleanup(func() {
		c.Unmount()
		eng.Close()
	})

	c.Update(Props{Value: "line1\nline2", Language: "go"})
	c.Update(Props{Value: "line1\nline2\nline3", Language: "go"})

	// Each replacement spans the whole previous value, with no content
	// event from native in between.
	want := []engine.Range{
		{StartLineNumber: 1, StartColumn: 1, EndLineNumber: 1, EndColumn: 2},
		{StartLineNumber: 1, StartColumn: 1, EndLineNumber: 2, EndColumn: 6},
	}
	if diff := cmp.Diff(want, bridge.ranges()); diff != "" {
		t.Errorf("edit ranges (-want +got):\n%s", diff)
	}
	if got := c.Editor().Model().Value(); got != "line1\nline2\nline3" {
		t.Errorf("model value = %q, want the last value", got)
	}
	if kinds := h.errs.kinds(); len(kinds) != 0 {
		t.Errorf("reported errors: %v", kinds)
	}
}
