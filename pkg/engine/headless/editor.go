package headless

import (
	"github.com/go-drift/codeview/pkg/engine"
)

// Editor is a headless single-model editor.
type Editor struct {
	eng      *Engine
	id       string
	node     engine.MountNode
	model    *Model
	options  engine.Options
	dim      engine.Dimension
	disposed bool
}

var _ engine.Editor = (*Editor)(nil)

// ID returns the editor ID used as its call journal target.
func (e *Editor) ID() string { return e.id }

// Node returns the mount node the editor was created on.
func (e *Editor) Node() engine.MountNode { return e.node }

// Model implements engine.Editor.
func (e *Editor) Model() engine.Model { return e.model }

// Options returns the current option set.
func (e *Editor) Options() engine.Options {
	e.eng.mu.Lock()
	defer e.eng.mu.Unlock()
	return e.options.Clone()
}

// Dimension returns the last layout size.
func (e *Editor) Dimension() engine.Dimension {
	e.eng.mu.Lock()
	defer e.eng.mu.Unlock()
	return e.dim
}

// Disposed reports whether Dispose was called.
func (e *Editor) Disposed() bool {
	e.eng.mu.Lock()
	defer e.eng.mu.Unlock()
	return e.disposed
}

func (e *Editor) begin(method string, args ...any) error {
	e.eng.mu.Lock()
	defer e.eng.mu.Unlock()
	if err := e.eng.record(e.id, method, args...); err != nil {
		return err
	}
	if e.disposed {
		return engine.ErrDisposed
	}
	return nil
}

// SetValue implements engine.Editor.
func (e *Editor) SetValue(value string) error {
	if err := e.begin("setValue", value); err != nil {
		return err
	}
	return e.model.assign(value)
}

// ExecuteEdits implements engine.Editor.
func (e *Editor) ExecuteEdits(source string, edits []engine.EditOperation) error {
	if err := e.begin("executeEdits", source, edits); err != nil {
		return err
	}
	return e.model.applyEdits(source, edits)
}

// PushUndoStop implements engine.Editor.
func (e *Editor) PushUndoStop() error {
	if err := e.begin("pushUndoStop"); err != nil {
		return err
	}
	e.model.pushUndoStop()
	return nil
}

// UpdateOptions implements engine.Editor. Options merge into the current set.
func (e *Editor) UpdateOptions(opts engine.Options) error {
	if err := e.begin("updateOptions", opts.Clone()); err != nil {
		return err
	}
	e.eng.mu.Lock()
	e.options = e.options.Merge(opts)
	e.eng.mu.Unlock()
	return nil
}

// Layout implements engine.Editor.
func (e *Editor) Layout(dim engine.Dimension) error {
	if err := e.begin("layout", dim); err != nil {
		return err
	}
	e.eng.mu.Lock()
	e.dim = dim
	e.eng.mu.Unlock()
	return nil
}

// Dispose implements engine.Editor.
func (e *Editor) Dispose() {
	e.eng.mu.Lock()
	defer e.eng.mu.Unlock()
	if e.disposed {
		return
	}
	e.eng.record(e.id, "dispose")
	e.disposed = true
	delete(e.eng.editors, e.id)
}

// DiffEditor is a headless diff editor.
type DiffEditor struct {
	eng      *Engine
	id       string
	node     engine.MountNode
	pair     engine.DiffModel
	options  engine.Options
	dim      engine.Dimension
	disposed bool
}

var _ engine.DiffEditor = (*DiffEditor)(nil)

// ID returns the diff editor ID used as its call journal target.
func (d *DiffEditor) ID() string { return d.id }

// Model implements engine.DiffEditor.
func (d *DiffEditor) Model() engine.DiffModel {
	d.eng.mu.Lock()
	defer d.eng.mu.Unlock()
	return d.pair
}

// Options returns the current option set.
func (d *DiffEditor) Options() engine.Options {
	d.eng.mu.Lock()
	defer d.eng.mu.Unlock()
	return d.options.Clone()
}

// Dimension returns the last layout size.
func (d *DiffEditor) Dimension() engine.Dimension {
	d.eng.mu.Lock()
	defer d.eng.mu.Unlock()
	return d.dim
}

// Disposed reports whether Dispose was called.
func (d *DiffEditor) Disposed() bool {
	d.eng.mu.Lock()
	defer d.eng.mu.Unlock()
	return d.disposed
}

// SetModel implements engine.DiffEditor.
func (d *DiffEditor) SetModel(pair engine.DiffModel) error {
	if pair.Original == nil || pair.Modified == nil {
		return engine.ErrIncompletePair
	}
	if _, err := d.eng.ownModel(pair.Original); err != nil {
		return err
	}
	if _, err := d.eng.ownModel(pair.Modified); err != nil {
		return err
	}
	d.eng.mu.Lock()
	defer d.eng.mu.Unlock()
	if err := d.eng.record(d.id, "setModel", pair.Original.ID(), pair.Modified.ID()); err != nil {
		return err
	}
	if d.disposed {
		return engine.ErrDisposed
	}
	d.pair = pair
	return nil
}

// UpdateOptions implements engine.DiffEditor.
func (d *DiffEditor) UpdateOptions(opts engine.Options) error {
	d.eng.mu.Lock()
	defer d.eng.mu.Unlock()
	if err := d.eng.record(d.id, "updateOptions", opts.Clone()); err != nil {
		return err
	}
	if d.disposed {
		return engine.ErrDisposed
	}
	d.options = d.options.Merge(opts)
	return nil
}

// Layout implements engine.DiffEditor.
func (d *DiffEditor) Layout(dim engine.Dimension) error {
	d.eng.mu.Lock()
	defer d.eng.mu.Unlock()
	if err := d.eng.record(d.id, "layout", dim); err != nil {
		return err
	}
	if d.disposed {
		return engine.ErrDisposed
	}
	d.dim = dim
	return nil
}

// Dispose implements engine.DiffEditor.
func (d *DiffEditor) Dispose() {
	d.eng.mu.Lock()
	defer d.eng.mu.Unlock()
	if d.disposed {
		return
	}
	d.eng.record(d.id, "dispose")
	d.disposed = true
	delete(d.eng.editors, d.id)
}
