package native

import (
	"sync"

	"github.com/google/uuid"

	"github.com/go-drift/codeview/pkg/engine"
	"github.com/go-drift/codeview/pkg/platform"
)

// Model mirrors a native text model. The Go side caches content and
// language; native remains the source of truth and reports edits back.
type Model struct {
	eng *Engine
	id  string
	uri string

	mu        sync.RWMutex
	value     string
	language  string
	version   int
	listeners map[int]func()
	nextLn    int
	disposed  bool
}

var _ engine.Model = (*Model)(nil)

func newModel(e *Engine, value, language string) *Model {
	id := uuid.NewString()
	return &Model{
		eng:       e,
		id:        id,
		uri:       "inmemory://model/" + id,
		value:     value,
		language:  language,
		version:   1,
		listeners: make(map[int]func()),
	}
}

// ID implements engine.Model.
func (m *Model) ID() string { return m.id }

// URI implements engine.Model.
func (m *Model) URI() string { return m.uri }

// Value implements engine.Model.
func (m *Model) Value() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

// Language implements engine.Model.
func (m *Model) Language() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.language
}

// FullRange implements engine.Model.
func (m *Model) FullRange() engine.Range {
	return engine.FullRange(m.Value())
}

func (m *Model) isDisposed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.disposed
}

// SetValue implements engine.Model.
func (m *Model) SetValue(value string) error {
	if m.isDisposed() {
		return engine.ErrDisposed
	}
	if _, err := m.eng.channel.Invoke("setValue", map[string]any{
		"modelId": m.id,
		"value":   value,
	}); err != nil {
		return err
	}
	m.store(value, 0)
	return nil
}

// store caches value. A positive version from native replaces the local
// counter. Listeners run on the UI thread.
func (m *Model) store(value string, version int) {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	if m.value == value {
		if version > 0 {
			m.version = version
		}
		m.mu.Unlock()
		return
	}
	m.value = value
	if version > 0 {
		m.version = version
	} else {
		m.version++
	}
	fns := make([]func(), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		platform.Dispatch(fn)
	}
}

// applyEdits brings the cache up to date with edits native has accepted,
// so ranges built before native reports back cover the current content.
func (m *Model) applyEdits(edits []engine.EditOperation) error {
	next, err := engine.ApplyEdits(m.Value(), edits)
	if err != nil {
		return err
	}
	m.store(next, 0)
	return nil
}

func (m *Model) handleContentChanged(value string, version int) {
	m.store(value, version)
}

// OnDidChangeContent implements engine.Model.
func (m *Model) OnDidChangeContent(fn func()) func() {
	m.mu.Lock()
	id := m.nextLn
	m.nextLn++
	m.listeners[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Dispose implements engine.Model.
func (m *Model) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	m.listeners = make(map[int]func())
	m.mu.Unlock()

	m.eng.mu.Lock()
	delete(m.eng.models, m.id)
	m.eng.mu.Unlock()

	m.eng.channel.Invoke("disposeModel", map[string]any{"modelId": m.id})
}
