package editor

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/codeview/pkg/engine"
	"github.com/go-drift/codeview/pkg/engine/headless"
	"github.com/go-drift/codeview/pkg/errors"
	"github.com/go-drift/codeview/pkg/theme"
)

func creationCalls(value, language string, opts engine.Options, activeTheme string) []headless.Call {
	calls := []headless.Call{
		{Target: "engine", Method: "createModel", Args: []any{value, language}},
		{Target: "engine", Method: "create", Args: []any{int64(1), "model-1", opts}},
	}
	for _, name := range theme.Names() {
		calls = append(calls, headless.Call{Target: "engine", Method: "defineTheme", Args: []any{name}})
	}
	return append(calls, headless.Call{Target: "engine", Method: "setTheme", Args: []any{activeTheme}})
}

func TestController_PlainScenario(t *testing.T) {
	h := newHarness(t)
	c := New(Props{Value: "a", Language: "javascript", Theme: "vs"}, h.options()...)
	if got := c.State(); got != StateUnmounted {
		t.Fatalf("state before mount = %v, want unmounted", got)
	}

	h.mount(c)
	if got := c.State(); got != StateSynced {
		t.Fatalf("state after load = %v, want synced", got)
	}
	want := creationCalls("a", "javascript", engine.Options{engine.OptionAutomaticLayout: true}, "vs")
	if diff := cmp.Diff(want, h.eng.Calls()); diff != "" {
		t.Fatalf("creation calls mismatch (-want +got):\n%s", diff)
	}

	id := editorID(t, c.Editor())
	h.eng.ResetCalls()
	c.Update(Props{Value: "ab", Language: "javascript", Theme: "vs"})
	if got := h.eng.CallCount(id, "executeEdits"); got != 1 {
		t.Errorf("executeEdits = %d, want 1", got)
	}
	if got := h.eng.CallCount(id, "pushUndoStop"); got != 1 {
		t.Errorf("pushUndoStop = %d, want 1", got)
	}
	if got := h.eng.CallCount("", "setValue"); got != 0 {
		t.Errorf("setValue = %d, want 0", got)
	}
	if got := h.eng.CallCount("engine", "create") + h.eng.CallCount("engine", "createModel"); got != 0 {
		t.Errorf("re-created %d times, want 0", got)
	}
	if got := c.Editor().Model().Value(); got != "ab" {
		t.Errorf("model value = %q, want %q", got, "ab")
	}

	h.eng.ResetCalls()
	c.Update(Props{Value: "ab", Language: "javascript", Theme: "vs-dark"})
	wantTheme := []headless.Call{{Target: "engine", Method: "setTheme", Args: []any{"vs-dark"}}}
	if diff := cmp.Diff(wantTheme, h.eng.Calls()); diff != "" {
		t.Errorf("theme change calls mismatch (-want +got):\n%s", diff)
	}

	h.eng.ResetCalls()
	c.Unmount()
	c.Unmount()
	if got := h.eng.CallCount(id, "dispose"); got != 1 {
		t.Errorf("editor dispose = %d, want 1", got)
	}
	if got := h.eng.LiveModels(); got != 0 {
		t.Errorf("live models after unmount = %d, want 0", got)
	}
	if got := c.State(); got != StateDisposed {
		t.Errorf("state after unmount = %v, want disposed", got)
	}
	if c.Editor() != nil {
		t.Error("Editor() should be nil after unmount")
	}
}

func TestController_UpdatesBeforeReadyUseLatestProps(t *testing.T) {
	h := newHarness(t)
	release := make(chan struct{})
	h.loader = engine.NewLoader(func(ctx context.Context, cfg engine.Config) (engine.Engine, error) {
		<-release
		return h.eng, nil
	})

	c := New(Props{Value: "a", Language: "javascript"}, h.options()...)
	c.SetMountNode(mountNode(1))
	c.Mount()
	c.Update(Props{Value: "b", Language: "javascript"})
	c.Update(Props{Value: "c", Language: "go", Theme: "monokai"})
	if got := c.State(); got != StateAwaitingEngine {
		t.Fatalf("state while loading = %v, want awaiting-engine", got)
	}
	if got := len(h.eng.Calls()); got != 0 {
		t.Fatalf("engine calls while loading = %d, want 0", got)
	}

	close(release)
	h.awaitDispatch()

	want := creationCalls("c", "go", engine.Options{engine.OptionAutomaticLayout: true}, "monokai")
	if diff := cmp.Diff(want, h.eng.Calls()); diff != "" {
		t.Fatalf("creation calls mismatch (-want +got):\n%s", diff)
	}
}

func TestController_UnmountBeforeLoad(t *testing.T) {
	h := newHarness(t)
	release := make(chan struct{})
	h.loader = engine.NewLoader(func(ctx context.Context, cfg engine.Config) (engine.Engine, error) {
		<-release
		return h.eng, nil
	})

	var hooks int
	c := New(Props{
		Value:           "a",
		OnEngineReady:   func(engine.Engine) { hooks++ },
		OnEditorCreated: func(engine.Model, engine.Editor) { hooks++ },
	}, h.options()...)
	c.SetMountNode(mountNode(1))
	c.Mount()
	c.Unmount()

	close(release)
	<-h.loader.Done()

	if n := h.drain(); n != 0 {
		t.Errorf("UI thread callbacks after unmount = %d, want 0", n)
	}
	if hooks != 0 {
		t.Errorf("hooks called %d times, want 0", hooks)
	}
	if got := h.eng.LiveEditors(); got != 0 {
		t.Errorf("live editors = %d, want 0", got)
	}
	if got := c.State(); got != StateDisposed {
		t.Errorf("state = %v, want disposed", got)
	}
}

func TestController_StaleLoadResultIgnored(t *testing.T) {
	h := newHarness(t)
	c := New(Props{Value: "a"}, h.options()...)
	c.SetMountNode(mountNode(1))
	c.lc.state = StateAwaitingEngine
	c.Unmount()

	// A result that was already queued when the controller unmounted.
	c.lc.engineLoaded(h.eng, nil)

	if got := c.State(); got != StateDisposed {
		t.Errorf("state = %v, want disposed", got)
	}
	if got := len(h.eng.Calls()); got != 0 {
		t.Errorf("engine calls = %d, want 0", got)
	}
}

func TestController_ValueChange(t *testing.T) {
	tests := []struct {
		name      string
		options   engine.Options
		next      Props
		setValue  int
		edits     int
		undoStops int
	}{
		{
			name:      "editable",
			next:      Props{Value: "ab", Language: "go"},
			edits:     1,
			undoStops: 1,
		},
		{
			name:     "read only",
			options:  engine.Options{"readOnly": true},
			next:     Props{Value: "ab", Language: "go", Options: engine.Options{"readOnly": true}},
			setValue: 1,
		},
		{
			name:     "read only lowercase alias",
			options:  engine.Options{"readonly": true},
			next:     Props{Value: "ab", Language: "go", Options: engine.Options{"readonly": true}},
			setValue: 1,
		},
		{
			name: "unchanged",
			next: Props{Value: "a", Language: "go", Theme: "vs-dark"},
		},
		{
			name:     "language change reloads once",
			next:     Props{Value: "ab", Language: "rust"},
			setValue: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			c := New(Props{Value: "a", Language: "go", Options: tt.options}, h.options()...)
			h.mount(c)
			id := editorID(t, c.Editor())
			h.eng.ResetCalls()

			c.Update(tt.next)

			got := []int{
				h.eng.CallCount(id, "setValue"),
				h.eng.CallCount(id, "executeEdits"),
				h.eng.CallCount(id, "pushUndoStop"),
			}
			want := []int{tt.setValue, tt.edits, tt.undoStops}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("setValue/executeEdits/pushUndoStop counts (-want +got):\n%s", diff)
			}
			if got := c.Editor().Model().Value(); got != tt.next.Value {
				t.Errorf("model value = %q, want %q", got, tt.next.Value)
			}
		})
	}
}

func TestController_LanguageChange(t *testing.T) {
	h := newHarness(t)
	c := New(Props{Value: "x := 1", Language: "go"}, h.options()...)
	h.mount(c)
	id := editorID(t, c.Editor())
	model := c.Editor().Model()
	h.eng.ResetCalls()

	c.Update(Props{Value: "x := 1", Language: "plaintext"})

	want := []headless.Call{
		{Target: id, Method: "setValue", Args: []any{"x := 1"}},
		{Target: model.ID(), Method: "setModelLanguage", Args: []any{"plaintext"}},
	}
	if diff := cmp.Diff(want, h.eng.Calls()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if got := model.Language(); got != "plaintext" {
		t.Errorf("language = %q, want plaintext", got)
	}
}

func TestController_OptionsAndSize(t *testing.T) {
	h := newHarness(t)
	c := New(Props{Value: "a", Options: engine.Options{"fontSize": 12}, Width: 100, Height: 50}, h.options()...)
	h.mount(c)
	id := editorID(t, c.Editor())
	if got := h.eng.CallCount(id, "layout"); got != 1 {
		t.Errorf("layout at creation = %d, want 1", got)
	}
	h.eng.ResetCalls()

	// Same content in a fresh map is not a change.
	c.Update(Props{Value: "a", Options: engine.Options{"fontSize": 12}, Width: 100, Height: 50})
	if got := len(h.eng.Calls()); got != 0 {
		t.Fatalf("calls for identical props = %v, want none", h.eng.Calls())
	}

	c.Update(Props{Value: "a", Options: engine.Options{"fontSize": 14}, Width: 200, Height: 50})
	want := []headless.Call{
		{Target: id, Method: "layout", Args: []any{engine.Dimension{Width: 200, Height: 50}}},
		{Target: id, Method: "updateOptions", Args: []any{engine.Options{"fontSize": 14}}},
	}
	if diff := cmp.Diff(want, h.eng.Calls()); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestController_NoMountNode(t *testing.T) {
	h := newHarness(t)
	c := New(Props{Value: "a"}, h.options()...)
	c.Mount()
	h.awaitDispatch()

	if got := c.State(); got != StateReady {
		t.Fatalf("state without node = %v, want ready", got)
	}
	c.Update(Props{Value: "b"})
	if got := h.eng.LiveEditors(); got != 0 {
		t.Fatalf("live editors without node = %d, want 0", got)
	}

	c.SetMountNode(mountNode(7))
	if got := c.State(); got != StateSynced {
		t.Fatalf("state after node = %v, want synced", got)
	}
	if got := c.Editor().Model().Value(); got != "b" {
		t.Errorf("value = %q, want b", got)
	}
}

func TestController_LoadFailure(t *testing.T) {
	h := newHarness(t)
	h.loader = engine.NewLoader(func(context.Context, engine.Config) (engine.Engine, error) {
		return nil, stderrors.New("assets unreachable")
	})
	c := New(Props{Value: "a"}, h.options()...)
	h.mount(c)

	if got := c.State(); got != StateAwaitingEngine {
		t.Errorf("state = %v, want awaiting-engine", got)
	}
	if diff := cmp.Diff([]errors.ErrorKind{errors.KindLoad}, h.errs.kinds()); diff != "" {
		t.Errorf("reported kinds (-want +got):\n%s", diff)
	}
	c.Update(Props{Value: "b"})
	if got := c.Engine(); got != nil {
		t.Errorf("Engine() = %v, want nil", got)
	}
}

func TestController_CreateFailure(t *testing.T) {
	h := newHarness(t)
	h.eng.FailNext("create", stderrors.New("no surface"))
	c := New(Props{Value: "a"}, h.options()...)
	h.mount(c)

	if got := c.State(); got != StateReady {
		t.Fatalf("state = %v, want ready", got)
	}
	if got := h.eng.LiveModels(); got != 0 {
		t.Errorf("live models after failed create = %d, want 0", got)
	}
	if diff := cmp.Diff([]errors.ErrorKind{errors.KindCreate}, h.errs.kinds()); diff != "" {
		t.Errorf("reported kinds (-want +got):\n%s", diff)
	}

	// The next pass retries.
	c.Update(Props{Value: "a2"})
	if got := c.State(); got != StateSynced {
		t.Fatalf("state after retry = %v, want synced", got)
	}
	if got := c.Editor().Model().Value(); got != "a2" {
		t.Errorf("value = %q, want a2", got)
	}
}

func TestController_Hooks(t *testing.T) {
	h := newHarness(t)
	var order []string
	c := New(Props{
		Value: "a",
		OnEngineReady: func(eng engine.Engine) {
			order = append(order, "engineReady")
		},
		OnEditorCreated: func(m engine.Model, ed engine.Editor) {
			if ed.Model() != m {
				t.Error("hook model is not the editor's model")
			}
			order = append(order, "editorCreated:"+m.Value())
		},
	}, h.options()...)
	h.mount(c)
	c.Update(c.Props())

	want := []string{"engineReady", "editorCreated:a"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("hook order (-want +got):\n%s", diff)
	}
}

func TestController_HookPanicRecovered(t *testing.T) {
	h := newHarness(t)
	c := New(Props{
		Value:           "a",
		OnEditorCreated: func(engine.Model, engine.Editor) { panic("boom") },
	}, h.options()...)
	h.mount(c)

	if got := c.State(); got != StateSynced {
		t.Errorf("state = %v, want synced", got)
	}
	if got := h.errs.panicCount(); got != 1 {
		t.Errorf("panics reported = %d, want 1", got)
	}
}

func TestController_DebouncedChange(t *testing.T) {
	h := newHarness(t)
	var got []string
	c := New(Props{Value: "a", OnChange: func(v string) { got = append(got, v) }}, h.options()...)
	h.mount(c)

	model := c.Editor().Model().(*headless.Model)
	for _, ch := range []string{"b", "c", "d"} {
		if err := model.Type(endOf(model), ch); err != nil {
			t.Fatalf("Type(%q): %v", ch, err)
		}
	}
	if n := h.clock.Advance(); n != 1 {
		t.Fatalf("timers fired = %d, want 1", n)
	}
	h.drain()

	if diff := cmp.Diff([]string{"abcd"}, got); diff != "" {
		t.Errorf("OnChange values (-want +got):\n%s", diff)
	}
}

func TestController_ChangeDroppedAfterUnmount(t *testing.T) {
	h := newHarness(t)
	var calls int
	c := New(Props{Value: "a", OnChange: func(string) { calls++ }}, h.options()...)
	h.mount(c)

	model := c.Editor().Model().(*headless.Model)
	if err := model.Type(endOf(model), "b"); err != nil {
		t.Fatal(err)
	}
	c.Unmount()
	h.clock.Advance()
	h.drain()

	if calls != 0 {
		t.Errorf("OnChange called %d times after unmount, want 0", calls)
	}
	if got := model.Listeners(); got != 0 {
		t.Errorf("listeners after unmount = %d, want 0", got)
	}
}

func TestController_QueuedChangeDroppedOnUnmount(t *testing.T) {
	h := newHarness(t)
	var calls int
	c := New(Props{Value: "a", OnChange: func(string) { calls++ }}, h.options()...)
	h.mount(c)

	model := c.Editor().Model().(*headless.Model)
	if err := model.Type(endOf(model), "b"); err != nil {
		t.Fatal(err)
	}
	h.clock.Advance()
	c.Unmount()
	h.drain()

	if calls != 0 {
		t.Errorf("OnChange called %d times, want 0", calls)
	}
}

func TestController_ThemeRedefinitionIdempotent(t *testing.T) {
	h := newHarness(t)
	first := New(Props{Value: "a", Theme: "dracula"}, h.options()...)
	h.mount(first)
	defined := h.eng.Themes()

	second := New(Props{Value: "b", Theme: "github"}, h.options()...)
	second.SetMountNode(mountNode(2))
	second.Mount()
	h.awaitDispatch()

	if diff := cmp.Diff(defined, h.eng.Themes()); diff != "" {
		t.Errorf("theme table changed on redefinition (-first +second):\n%s", diff)
	}
	if got := h.eng.ActiveTheme(); got != "github" {
		t.Errorf("active theme = %q, want github", got)
	}
	if got, want := h.eng.CallCount("engine", "defineTheme"), 2*len(theme.Names()); got != want {
		t.Errorf("defineTheme calls = %d, want %d", got, want)
	}

	h.eng.ResetCalls()
	first.Update(Props{Value: "a", Theme: "solarized-dark"})
	if got := h.eng.CallCount("engine", "defineTheme"); got != 0 {
		t.Errorf("defineTheme on theme change = %d, want 0", got)
	}
}

func TestController_DefaultTheme(t *testing.T) {
	h := newHarness(t)
	c := New(Props{Value: "a"}, h.options()...)
	h.mount(c)
	if got := h.eng.ActiveTheme(); got != theme.DefaultName {
		t.Errorf("active theme = %q, want %q", got, theme.DefaultName)
	}
}

func TestController_UpdateAfterUnmountIgnored(t *testing.T) {
	h := newHarness(t)
	c := New(Props{Value: "a"}, h.options()...)
	h.mount(c)
	c.Unmount()
	h.eng.ResetCalls()

	c.Update(Props{Value: "b"})
	c.SetMountNode(mountNode(3))
	if got := len(h.eng.Calls()); got != 0 {
		t.Errorf("calls after unmount = %v, want none", h.eng.Calls())
	}
	if got := c.Props().Value; got != "a" {
		t.Errorf("props after unmount = %q, want unchanged", got)
	}
}

func TestController_UnmountNeverMounted(t *testing.T) {
	c := New(Props{Value: "a"})
	c.Unmount()
	c.Unmount()
	if got := c.State(); got != StateDisposed {
		t.Errorf("state = %v, want disposed", got)
	}
}
