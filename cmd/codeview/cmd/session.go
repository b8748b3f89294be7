package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-drift/codeview/pkg/config"
	"github.com/go-drift/codeview/pkg/editor"
	"github.com/go-drift/codeview/pkg/engine"
	"github.com/go-drift/codeview/pkg/engine/headless"
)

// surface is the mount node of the single editor a session drives.
type surface int64

func (s surface) MountID() int64 { return int64(s) }

// session drives one editor from successive desired-state documents and
// prints the engine calls each pass produced. It lives on the UI thread.
type session struct {
	out  io.Writer
	opts []editor.Option

	kind  string
	plain *editor.Controller
	diff  *editor.DiffController
	eng   *headless.Engine

	// onCreated runs after the editor has been created.
	onCreated func()
}

func newSession(out io.Writer, opts []editor.Option) *session {
	return &session{out: out, opts: opts}
}

// apply reconciles the editor against st. A document that switches between
// plain and diff replaces the editor.
func (s *session) apply(st *config.State) {
	if st.Kind != s.kind {
		s.close()
		s.kind = st.Kind
		s.mount(st)
		return
	}
	if st.IsDiff() {
		s.diff.Update(s.diffProps(st))
	} else {
		s.plain.Update(s.props(st))
	}
	s.flush("update")
}

func (s *session) mount(st *config.State) {
	if st.IsDiff() {
		s.diff = editor.NewDiff(s.diffProps(st), s.opts...)
		s.diff.SetMountNode(surface(1))
		s.diff.Mount()
		return
	}
	s.plain = editor.New(s.props(st), s.opts...)
	s.plain.SetMountNode(surface(1))
	s.plain.Mount()
}

func (s *session) props(st *config.State) editor.Props {
	p := st.Props()
	p.OnEngineReady = s.engineReady
	p.OnEditorCreated = func(engine.Model, engine.Editor) { s.created() }
	p.OnChange = s.changed
	return p
}

func (s *session) diffProps(st *config.State) editor.DiffProps {
	p := st.DiffProps()
	p.OnEngineReady = s.engineReady
	p.OnEditorCreated = func(engine.DiffModel, engine.DiffEditor) { s.created() }
	p.OnChange = s.changed
	return p
}

func (s *session) engineReady(eng engine.Engine) {
	if h, ok := eng.(*headless.Engine); ok {
		s.eng = h
	}
	fmt.Fprintln(s.out, "engine loaded")
}

func (s *session) created() {
	s.flush("create " + s.kind)
	if s.onCreated != nil {
		s.onCreated()
	}
}

func (s *session) changed(value string) {
	fmt.Fprintf(s.out, "change: %s\n", quote(value))
}

// state reports the lifecycle state of the current editor.
func (s *session) state() editor.State {
	switch {
	case s.plain != nil:
		return s.plain.State()
	case s.diff != nil:
		return s.diff.State()
	}
	return editor.StateUnmounted
}

// close unmounts the current editor, if any.
func (s *session) close() {
	switch {
	case s.plain != nil:
		s.plain.Unmount()
		s.plain = nil
	case s.diff != nil:
		s.diff.Unmount()
		s.diff = nil
	default:
		return
	}
	s.flush("unmount")
}

// flush prints and forgets the calls journaled since the last flush.
func (s *session) flush(label string) {
	if s.eng == nil {
		return
	}
	calls := s.eng.Calls()
	s.eng.ResetCalls()
	if len(calls) == 0 {
		fmt.Fprintf(s.out, "%s: no changes\n", label)
		return
	}
	fmt.Fprintf(s.out, "%s: %d calls\n", label, len(calls))
	for _, c := range calls {
		fmt.Fprintf(s.out, "  %s\n", formatCall(c))
	}
}

func formatCall(c headless.Call) string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = formatArg(a)
	}
	return fmt.Sprintf("%s.%s(%s)", c.Target, c.Method, strings.Join(args, ", "))
}

func formatArg(a any) string {
	switch v := a.(type) {
	case string:
		return quote(v)
	case engine.Options:
		return fmt.Sprint(map[string]any(v))
	default:
		return fmt.Sprint(v)
	}
}

// quote quotes s, eliding the middle of long values.
func quote(s string) string {
	const limit = 48
	if r := []rune(s); len(r) > limit {
		s = string(r[:limit/2]) + "…" + string(r[len(r)-limit/2:])
	}
	return strconv.Quote(s)
}
