package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

func TestEditorErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *EditorError
		want string
	}{
		{
			name: "plain",
			err:  &EditorError{Op: "editor.create", Kind: KindCreate, Err: stderrors.New("boom")},
			want: "editor.create [create]: boom",
		},
		{
			name: "channel",
			err:  &EditorError{Op: "native.load", Kind: KindLoad, Channel: "codeview/engine", Err: stderrors.New("boom")},
			want: "native.load [load] channel=codeview/engine: boom",
		},
		{
			name: "view",
			err:  &EditorError{Op: "native.layout", Kind: KindSync, ViewType: "code_editor", Err: stderrors.New("boom")},
			want: "native.layout [sync] view=code_editor: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEditorErrorUnwrap(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := &EditorError{Op: "x", Err: sentinel}
	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindPlatform, "platform"},
		{KindParsing, "parsing"},
		{KindLoad, "load"},
		{KindCreate, "create"},
		{KindSync, "sync"},
		{KindPanic, "panic"},
		{KindConfig, "config"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic"}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "editor.onChange"
	if got, want := err.Error(), "panic in editor.onChange: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *EditorError
	withHandler(t, &testHandler{onError: func(err *EditorError) { captured = err }})

	Report(&EditorError{Op: "test.op", Kind: KindLoad, Err: stderrors.New("x")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	withHandler(t, &testHandler{onError: func(*EditorError) { called = true }})
	Report(nil)
	ReportPanic(nil)
	if called {
		t.Error("nil reports must not reach the handler")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	withHandler(t, &testHandler{onPanic: func(err *PanicError) { captured = err }})

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestSetHandlerNil(t *testing.T) {
	old := DefaultHandler
	t.Cleanup(func() { SetHandler(old) })

	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}
	h.HandleError(&EditorError{Op: "native.load", Kind: KindLoad, Err: stderrors.New("offline")})
	h.HandlePanic(&PanicError{Op: "editor.onChange", Value: "nil map"})

	out := buf.String()
	for _, want := range []string{
		"[codeview error] native.load: offline",
		"[codeview panic] editor.onChange: nil map",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q should contain %q", out, want)
		}
	}
}

func TestLogHandlerVerbose(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf, Verbose: true}
	h.HandleError(&EditorError{
		Op:         "native.load",
		Kind:       KindLoad,
		Channel:    "codeview/engine",
		Err:        stderrors.New("offline"),
		StackTrace: "frame",
		Timestamp:  time.Now(),
	})
	out := buf.String()
	if !strings.Contains(out, "[load] channel=codeview/engine") {
		t.Errorf("verbose output %q should carry kind and channel", out)
	}
	if !strings.Contains(out, "Stack trace:\nframe") {
		t.Errorf("verbose output %q should carry the stack", out)
	}
}

type testHandler struct {
	onError func(*EditorError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *EditorError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func withHandler(t *testing.T, h ErrorHandler) {
	t.Helper()
	old := DefaultHandler
	SetHandler(h)
	t.Cleanup(func() { SetHandler(old) })
}
