// Package headless is an in-process editor engine. It keeps text models,
// undo history, editor instances and the theme table in memory and records
// every call it receives, which makes it the engine of choice for hosts
// without a native editor surface and for tests.
package headless

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/go-drift/codeview/pkg/engine"
	"github.com/go-drift/codeview/pkg/theme"
)

// Call is one recorded engine call.
type Call struct {
	// Target is "engine", a model ID or an editor ID.
	Target string
	Method string
	Args   []any
}

// Engine is an in-process engine.Engine. All methods are safe for
// concurrent use; content-change listeners run synchronously on the
// goroutine that changed the content.
type Engine struct {
	mu       sync.Mutex
	cfg      engine.Config
	nextID   int
	models   map[string]*Model
	editors  map[string]bool
	themes   map[string]theme.Definition
	active   string
	calls    []Call
	failures map[string]error
}

var _ engine.Engine = (*Engine)(nil)

// New creates an empty engine.
func New() *Engine {
	return &Engine{
		models:   make(map[string]*Model),
		editors:  make(map[string]bool),
		themes:   make(map[string]theme.Definition),
		failures: make(map[string]error),
		active:   theme.DefaultName,
	}
}

// Boot is an engine.BootFunc returning a fresh headless engine.
func Boot(ctx context.Context, cfg engine.Config) (engine.Engine, error) {
	e := New()
	e.cfg = cfg
	return e, nil
}

// Config returns the loader configuration the engine was booted with.
func (e *Engine) Config() engine.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// FailNext makes the next call of method (e.g. "createModel", "create")
// return err instead of running.
func (e *Engine) FailNext(method string, err error) {
	e.mu.Lock()
	e.failures[method] = err
	e.mu.Unlock()
}

// record journals a call and returns a pending injected failure. Callers
// hold e.mu.
func (e *Engine) record(target, method string, args ...any) error {
	e.calls = append(e.calls, Call{Target: target, Method: method, Args: args})
	if err, ok := e.failures[method]; ok {
		delete(e.failures, method)
		return err
	}
	return nil
}

// Calls returns a copy of the call journal.
func (e *Engine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// CallCount returns how many times method was called on target. An empty
// target matches every target.
func (e *Engine) CallCount(target, method string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, c := range e.calls {
		if c.Method == method && (target == "" || c.Target == target) {
			n++
		}
	}
	return n
}

// ResetCalls clears the call journal.
func (e *Engine) ResetCalls() {
	e.mu.Lock()
	e.calls = nil
	e.mu.Unlock()
}

// ActiveTheme returns the name of the active theme.
func (e *Engine) ActiveTheme() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Themes returns a copy of the defined themes.
func (e *Engine) Themes() map[string]theme.Definition {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.themes)
}

// LiveModels returns the number of undisposed models.
func (e *Engine) LiveModels() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.models)
}

// LiveEditors returns the number of undisposed editors and diff editors.
func (e *Engine) LiveEditors() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.editors)
}

func (e *Engine) newID(prefix string) string {
	e.nextID++
	return fmt.Sprintf("%s-%d", prefix, e.nextID)
}

// CreateModel implements engine.Engine.
func (e *Engine) CreateModel(value, language string) (engine.Model, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record("engine", "createModel", value, language); err != nil {
		return nil, err
	}
	id := e.newID("model")
	m := &Model{
		eng:       e,
		id:        id,
		uri:       "inmemory://model/" + id,
		value:     value,
		language:  language,
		version:   1,
		history:   newHistory(0),
		listeners: make(map[int]func()),
	}
	e.models[id] = m
	return m, nil
}

func (e *Engine) ownModel(m engine.Model) (*Model, error) {
	hm, ok := m.(*Model)
	if !ok || hm.eng != e {
		return nil, engine.ErrForeignModel
	}
	return hm, nil
}

// SetModelLanguage implements engine.Engine.
func (e *Engine) SetModelLanguage(m engine.Model, language string) error {
	hm, err := e.ownModel(m)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(hm.id, "setModelLanguage", language); err != nil {
		return err
	}
	if hm.disposed {
		return engine.ErrDisposed
	}
	hm.language = language
	return nil
}

// Create implements engine.Engine.
func (e *Engine) Create(node engine.MountNode, model engine.Model, opts engine.Options) (engine.Editor, error) {
	if node == nil {
		return nil, engine.ErrNoMountNode
	}
	hm, err := e.ownModel(model)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record("engine", "create", node.MountID(), hm.id, opts.Clone()); err != nil {
		return nil, err
	}
	id := e.newID("editor")
	e.editors[id] = true
	return &Editor{eng: e, id: id, node: node, model: hm, options: opts.Clone()}, nil
}

// CreateDiffEditor implements engine.Engine.
func (e *Engine) CreateDiffEditor(node engine.MountNode, opts engine.Options) (engine.DiffEditor, error) {
	if node == nil {
		return nil, engine.ErrNoMountNode
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record("engine", "createDiffEditor", node.MountID(), opts.Clone()); err != nil {
		return nil, err
	}
	id := e.newID("diff")
	e.editors[id] = true
	return &DiffEditor{eng: e, id: id, node: node, options: opts.Clone()}, nil
}

// DefineTheme implements engine.Engine.
func (e *Engine) DefineTheme(name string, def theme.Definition) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record("engine", "defineTheme", name); err != nil {
		return err
	}
	e.themes[name] = def
	return nil
}

// SetTheme implements engine.Engine.
func (e *Engine) SetTheme(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record("engine", "setTheme", name); err != nil {
		return err
	}
	if _, ok := e.themes[name]; !ok && !theme.IsBuiltin(name) {
		return fmt.Errorf("headless: theme %q is not defined", name)
	}
	e.active = name
	return nil
}
