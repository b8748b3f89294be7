package headless

import "github.com/go-drift/codeview/pkg/engine"

// Model is a headless text model.
type Model struct {
	eng       *Engine
	id        string
	uri       string
	value     string
	language  string
	version   int
	history   *history
	listeners map[int]func()
	nextLn    int
	disposed  bool
}

var _ engine.Model = (*Model)(nil)

// ID implements engine.Model.
func (m *Model) ID() string { return m.id }

// URI implements engine.Model.
func (m *Model) URI() string { return m.uri }

// Value implements engine.Model.
func (m *Model) Value() string {
	m.eng.mu.Lock()
	defer m.eng.mu.Unlock()
	return m.value
}

// Language implements engine.Model.
func (m *Model) Language() string {
	m.eng.mu.Lock()
	defer m.eng.mu.Unlock()
	return m.language
}

// VersionID increments on every content change.
func (m *Model) VersionID() int {
	m.eng.mu.Lock()
	defer m.eng.mu.Unlock()
	return m.version
}

// UndoDepth returns the number of undo steps available.
func (m *Model) UndoDepth() int {
	m.eng.mu.Lock()
	defer m.eng.mu.Unlock()
	return m.history.depth()
}

// FullRange implements engine.Model.
func (m *Model) FullRange() engine.Range {
	m.eng.mu.Lock()
	defer m.eng.mu.Unlock()
	return engine.FullRange(m.value)
}

// SetValue implements engine.Model. Direct assignment drops undo history.
func (m *Model) SetValue(value string) error {
	m.eng.mu.Lock()
	err := m.eng.record(m.id, "setValue", value)
	m.eng.mu.Unlock()
	if err != nil {
		return err
	}
	return m.assign(value)
}

func (m *Model) assign(value string) error {
	m.eng.mu.Lock()
	if m.disposed {
		m.eng.mu.Unlock()
		return engine.ErrDisposed
	}
	m.history.reset()
	fire := m.setLocked(value)
	m.eng.mu.Unlock()
	fire()
	return nil
}

// setLocked stores value and returns a function notifying listeners, to be
// called after the lock is released. Callers hold eng.mu.
func (m *Model) setLocked(value string) func() {
	if value == m.value {
		return func() {}
	}
	m.value = value
	m.version++
	fns := make([]func(), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn()
		}
	}
}

// applyEdits runs edits as an undoable operation.
func (m *Model) applyEdits(source string, edits []engine.EditOperation) error {
	m.eng.mu.Lock()
	if m.disposed {
		m.eng.mu.Unlock()
		return engine.ErrDisposed
	}
	next, err := engine.ApplyEdits(m.value, edits)
	if err != nil {
		m.eng.mu.Unlock()
		return err
	}
	m.history.record(source, m.value, next)
	fire := m.setLocked(next)
	m.eng.mu.Unlock()
	fire()
	return nil
}

func (m *Model) pushUndoStop() {
	m.eng.mu.Lock()
	m.history.stop()
	m.eng.mu.Unlock()
}

// Undo reverts the most recent undo group.
func (m *Model) Undo() error {
	m.eng.mu.Lock()
	g, err := m.history.undo()
	if err != nil {
		m.eng.mu.Unlock()
		return err
	}
	fire := m.setLocked(g.before)
	m.eng.mu.Unlock()
	fire()
	return nil
}

// Redo reapplies the most recently undone group.
func (m *Model) Redo() error {
	m.eng.mu.Lock()
	g, err := m.history.redo()
	if err != nil {
		m.eng.mu.Unlock()
		return err
	}
	fire := m.setLocked(g.after)
	m.eng.mu.Unlock()
	fire()
	return nil
}

// Type simulates a user edit: text replaces the range as an undoable
// operation without an undo stop, the way keystrokes merge.
func (m *Model) Type(r engine.Range, text string) error {
	return m.applyEdits("keyboard", []engine.EditOperation{{Range: r, Text: text}})
}

// OnDidChangeContent implements engine.Model.
func (m *Model) OnDidChangeContent(fn func()) func() {
	m.eng.mu.Lock()
	id := m.nextLn
	m.nextLn++
	m.listeners[id] = fn
	m.eng.mu.Unlock()
	return func() {
		m.eng.mu.Lock()
		delete(m.listeners, id)
		m.eng.mu.Unlock()
	}
}

// Listeners returns the number of registered content listeners.
func (m *Model) Listeners() int {
	m.eng.mu.Lock()
	defer m.eng.mu.Unlock()
	return len(m.listeners)
}

// Disposed reports whether Dispose was called.
func (m *Model) Disposed() bool {
	m.eng.mu.Lock()
	defer m.eng.mu.Unlock()
	return m.disposed
}

// Dispose implements engine.Model.
func (m *Model) Dispose() {
	m.eng.mu.Lock()
	defer m.eng.mu.Unlock()
	if m.disposed {
		return
	}
	m.eng.record(m.id, "dispose")
	m.disposed = true
	m.listeners = make(map[int]func())
	delete(m.eng.models, m.id)
}
