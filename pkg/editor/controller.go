package editor

import (
	"github.com/go-drift/codeview/pkg/engine"
	"github.com/go-drift/codeview/pkg/errors"
)

// EditSource attributes the edits a controller applies on a value change.
const EditSource = "codeview"

// Props describes a plain editor.
type Props struct {
	// Value is the desired content.
	Value string
	// Language is the model language tag.
	Language string
	// Theme names the active theme. Empty selects "vs".
	Theme string
	// Options are forwarded to the editor as is.
	Options engine.Options
	// Width and Height size the editor. Zero leaves sizing to the engine.
	Width, Height float64

	// OnEngineReady is called once when the engine becomes available,
	// before the editor is created.
	OnEngineReady func(eng engine.Engine)
	// OnEditorCreated is called once after the editor is created, with the
	// model it was created on. The engine is the one OnEngineReady saw.
	OnEditorCreated func(model engine.Model, ed engine.Editor)
	// OnChange receives the content after a burst of edits has settled.
	OnChange func(value string)
}

func (p Props) dimension() engine.Dimension {
	return engine.Dimension{Width: p.Width, Height: p.Height}
}

// Controller keeps a plain editor in sync with a Props description.
//
// All methods must be called on the UI thread, the one platform.Dispatch
// delivers to.
type Controller struct {
	lc    lifecycle
	props Props

	editor engine.Editor
	model  engine.Model
}

// New creates an unmounted controller.
func New(props Props, opts ...Option) *Controller {
	c := &Controller{props: props}
	c.lc = newLifecycle("editor.Controller", opts)
	c.lc.ready = c.engineReady
	c.lc.pass = c.pass
	return c
}

// Mount starts loading the engine.
func (c *Controller) Mount() { c.lc.mount() }

// SetMountNode reports the node the editor attaches to.
func (c *Controller) SetMountNode(node engine.MountNode) { c.lc.setNode(node) }

// Unmount disposes the editor and its model. Pending change notifications
// and a pending engine load are dropped. Calling it again does nothing.
func (c *Controller) Unmount() {
	c.lc.unmount()
	c.editor = nil
	c.model = nil
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.lc.state }

// Engine returns the loaded engine, or nil.
func (c *Controller) Engine() engine.Engine { return c.lc.eng }

// Editor returns the live editor, or nil before creation and after unmount.
func (c *Controller) Editor() engine.Editor { return c.editor }

// Props returns the latest description.
func (c *Controller) Props() Props { return c.props }

// Update runs one reconciliation pass against props.
func (c *Controller) Update(props Props) {
	if c.lc.state == StateDisposed {
		return
	}
	prev := c.props
	c.props = props
	switch c.lc.state {
	case StateReady:
		c.create()
	case StateSynced:
		c.apply(prev, props)
	}
}

func (c *Controller) engineReady(eng engine.Engine) {
	if fn := c.props.OnEngineReady; fn != nil {
		c.lc.hook("OnEngineReady", func() { fn(eng) })
	}
}

func (c *Controller) pass() {
	if c.lc.state == StateReady {
		c.create()
	}
}

// create builds the editor from the latest props.
func (c *Controller) create() {
	if c.lc.node == nil {
		return
	}
	eng, p := c.lc.eng, c.props

	model, err := createModel(eng, p.Value, p.Language, "")
	if err != nil {
		c.lc.report("create", errors.KindCreate, err)
		return
	}
	opts := engine.Options{engine.OptionAutomaticLayout: true}.Merge(p.Options)
	ed, err := eng.Create(c.lc.node, model, opts)
	if err != nil {
		model.Dispose()
		c.lc.report("create", errors.KindCreate, err)
		return
	}

	c.editor, c.model = ed, model
	c.lc.onDispose(model.Dispose)
	c.lc.onDispose(ed.Dispose)
	c.lc.synced()

	if p.Width > 0 || p.Height > 0 {
		c.lc.report("layout", errors.KindSync, ed.Layout(p.dimension()))
	}
	c.lc.watch(c.notifyChange, model)
	c.lc.applyThemes(p.Theme)

	if fn := p.OnEditorCreated; fn != nil {
		c.lc.hook("OnEditorCreated", func() { fn(model, ed) })
	}
}

// apply diffs prev against next and issues the minimal engine calls.
func (c *Controller) apply(prev, next Props) {
	ed, model := c.editor, c.model

	if prev.Width != next.Width || prev.Height != next.Height {
		c.lc.report("layout", errors.KindSync, ed.Layout(next.dimension()))
	}

	// A language change reloads the content, which already carries the
	// new value.
	switch {
	case prev.Language != next.Language:
		c.lc.report("setValue", errors.KindSync, ed.SetValue(next.Value))
		c.lc.report("setModelLanguage", errors.KindSync, c.lc.eng.SetModelLanguage(model, next.Language))
	case prev.Value != next.Value:
		c.setValue(next)
	}

	if prev.Theme != next.Theme {
		c.lc.setTheme(next.Theme)
	}
	if !prev.Options.Equal(next.Options) {
		c.lc.report("updateOptions", errors.KindSync, ed.UpdateOptions(next.Options))
	}
}

func (c *Controller) setValue(p Props) {
	ed := c.editor
	if p.Options.ReadOnly() {
		c.lc.report("setValue", errors.KindSync, ed.SetValue(p.Value))
		return
	}
	if err := ed.ExecuteEdits(EditSource, fullReplace(c.model, p.Value)); err != nil {
		c.lc.report("executeEdits", errors.KindSync, err)
		return
	}
	c.lc.report("pushUndoStop", errors.KindSync, ed.PushUndoStop())
}

func (c *Controller) notifyChange() {
	fn := c.props.OnChange
	if fn == nil || c.model == nil {
		return
	}
	value := c.model.Value()
	c.lc.hook("OnChange", func() { fn(value) })
}
