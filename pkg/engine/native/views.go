package native

import (
	"sync"

	"github.com/go-drift/codeview/pkg/engine"
	"github.com/go-drift/codeview/pkg/platform"
)

// editorView is the platform view behind a native editor or diff editor.
// The registry owns it; Dispose only runs the Go-side cleanup.
type editorView struct {
	viewID   int64
	viewType string

	mu       sync.Mutex
	disposed bool
}

func (v *editorView) ViewID() int64    { return v.viewID }
func (v *editorView) ViewType() string { return v.viewType }

func (v *editorView) Dispose() {
	v.mu.Lock()
	v.disposed = true
	v.mu.Unlock()
}

func (v *editorView) invoke(method string, args map[string]any) error {
	v.mu.Lock()
	disposed := v.disposed
	v.mu.Unlock()
	if disposed {
		return engine.ErrDisposed
	}
	_, err := platform.GetPlatformViewRegistry().InvokeViewMethod(v.viewID, method, args)
	return err
}

func (v *editorView) release() {
	platform.GetPlatformViewRegistry().Dispose(v.viewID)
}

type viewFactory string

func (f viewFactory) ViewType() string {
	return string(f)
}

func (f viewFactory) Create(viewID int64, params map[string]any) (platform.PlatformView, error) {
	return &editorView{viewID: viewID, viewType: string(f)}, nil
}

// Editor is a native single-model editor.
type Editor struct {
	view  *editorView
	model *Model
}

var _ engine.Editor = (*Editor)(nil)

// ViewID returns the platform view ID of the editor surface.
func (e *Editor) ViewID() int64 { return e.view.viewID }

// Model implements engine.Editor.
func (e *Editor) Model() engine.Model { return e.model }

// SetValue implements engine.Editor.
func (e *Editor) SetValue(value string) error {
	if err := e.view.invoke("setValue", map[string]any{"value": value}); err != nil {
		return err
	}
	e.model.store(value, 0)
	return nil
}

// ExecuteEdits implements engine.Editor. The model cache takes the edits
// as soon as native accepts them; the content event that follows carries
// the same text and only updates the version.
func (e *Editor) ExecuteEdits(source string, edits []engine.EditOperation) error {
	if err := e.view.invoke("executeEdits", map[string]any{
		"source": source,
		"edits":  edits,
	}); err != nil {
		return err
	}
	return e.model.applyEdits(edits)
}

// PushUndoStop implements engine.Editor.
func (e *Editor) PushUndoStop() error {
	return e.view.invoke("pushUndoStop", nil)
}

// UpdateOptions implements engine.Editor.
func (e *Editor) UpdateOptions(opts engine.Options) error {
	return e.view.invoke("updateOptions", map[string]any{"options": map[string]any(opts)})
}

// Layout implements engine.Editor.
func (e *Editor) Layout(dim engine.Dimension) error {
	return e.view.invoke("layout", map[string]any{"width": dim.Width, "height": dim.Height})
}

// Dispose implements engine.Editor.
func (e *Editor) Dispose() {
	e.view.release()
}

// DiffEditor is a native diff editor.
type DiffEditor struct {
	view *editorView
	eng  *Engine

	mu   sync.Mutex
	pair engine.DiffModel
}

var _ engine.DiffEditor = (*DiffEditor)(nil)

// ViewID returns the platform view ID of the diff editor surface.
func (d *DiffEditor) ViewID() int64 { return d.view.viewID }

// Model implements engine.DiffEditor.
func (d *DiffEditor) Model() engine.DiffModel {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pair
}

// SetModel implements engine.DiffEditor.
func (d *DiffEditor) SetModel(pair engine.DiffModel) error {
	if pair.Original == nil || pair.Modified == nil {
		return engine.ErrIncompletePair
	}
	orig, err := d.eng.ownModel(pair.Original)
	if err != nil {
		return err
	}
	mod, err := d.eng.ownModel(pair.Modified)
	if err != nil {
		return err
	}
	if err := d.view.invoke("setModel", map[string]any{
		"originalId": orig.id,
		"modifiedId": mod.id,
	}); err != nil {
		return err
	}
	d.mu.Lock()
	d.pair = pair
	d.mu.Unlock()
	return nil
}

// UpdateOptions implements engine.DiffEditor.
func (d *DiffEditor) UpdateOptions(opts engine.Options) error {
	return d.view.invoke("updateOptions", map[string]any{"options": map[string]any(opts)})
}

// Layout implements engine.DiffEditor.
func (d *DiffEditor) Layout(dim engine.Dimension) error {
	return d.view.invoke("layout", map[string]any{"width": dim.Width, "height": dim.Height})
}

// Dispose implements engine.DiffEditor.
func (d *DiffEditor) Dispose() {
	d.view.release()
}
