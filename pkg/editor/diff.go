package editor

import (
	"github.com/go-drift/codeview/pkg/engine"
	"github.com/go-drift/codeview/pkg/errors"
)

// DiffProps describes a diff editor.
type DiffProps struct {
	// Original and Modified are the two sides.
	Original, Modified string
	// OriginalLanguage and ModifiedLanguage tag each side. An empty side
	// falls back to Language.
	OriginalLanguage, ModifiedLanguage string
	Language                           string
	// Theme names the active theme. Empty selects "vs".
	Theme string
	// Options are forwarded to the diff editor as is.
	Options engine.Options
	// Width and Height size the editor. Zero leaves sizing to the engine.
	Width, Height float64

	OnEngineReady func(eng engine.Engine)
	// OnEditorCreated receives the model pair once it is bound to the new
	// diff editor.
	OnEditorCreated func(pair engine.DiffModel, ed engine.DiffEditor)
	// OnChange receives the modified side after edits have settled.
	OnChange func(modified string)
}

func (p DiffProps) originalLanguage() string { return or(p.OriginalLanguage, p.Language) }
func (p DiffProps) modifiedLanguage() string { return or(p.ModifiedLanguage, p.Language) }

func (p DiffProps) dimension() engine.Dimension {
	return engine.Dimension{Width: p.Width, Height: p.Height}
}

// DiffController keeps a diff editor in sync with a DiffProps description.
// Like Controller, it is confined to the UI thread.
type DiffController struct {
	lc    lifecycle
	props DiffProps

	editor engine.DiffEditor
	pair   engine.DiffModel
}

// NewDiff creates an unmounted diff controller.
func NewDiff(props DiffProps, opts ...Option) *DiffController {
	c := &DiffController{props: props}
	c.lc = newLifecycle("editor.DiffController", opts)
	c.lc.ready = c.engineReady
	c.lc.pass = c.pass
	return c
}

func (c *DiffController) Mount()                             { c.lc.mount() }
func (c *DiffController) SetMountNode(node engine.MountNode) { c.lc.setNode(node) }
func (c *DiffController) State() State                       { return c.lc.state }
func (c *DiffController) Engine() engine.Engine              { return c.lc.eng }
func (c *DiffController) DiffEditor() engine.DiffEditor      { return c.editor }
func (c *DiffController) Props() DiffProps                   { return c.props }

// Unmount disposes the diff editor and both models.
func (c *DiffController) Unmount() {
	c.lc.unmount()
	c.editor = nil
	c.pair = engine.DiffModel{}
}

// Update runs one reconciliation pass against props.
func (c *DiffController) Update(props DiffProps) {
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

func (c *DiffController) engineReady(eng engine.Engine) {
	if fn := c.props.OnEngineReady; fn != nil {
		c.lc.hook("OnEngineReady", func() { fn(eng) })
	}
}

func (c *DiffController) pass() {
	if c.lc.state == StateReady {
		c.create()
	}
}

func (c *DiffController) create() {
	if c.lc.node == nil {
		return
	}
	eng, p := c.lc.eng, c.props

	pair, err := createModelPair(eng, p)
	if err != nil {
		c.lc.report("create", errors.KindCreate, err)
		return
	}
	ed, err := eng.CreateDiffEditor(c.lc.node, p.Options.With(engine.OptionAutomaticLayout, true))
	if err == nil {
		if err = ed.SetModel(pair); err != nil {
			ed.Dispose()
		}
	}
	if err != nil {
		pair.Original.Dispose()
		pair.Modified.Dispose()
		c.lc.report("create", errors.KindCreate, err)
		return
	}

	c.editor, c.pair = ed, pair
	c.lc.onDispose(pair.Original.Dispose)
	c.lc.onDispose(pair.Modified.Dispose)
	c.lc.onDispose(ed.Dispose)
	c.lc.synced()

	c.lc.report("layout", errors.KindSync, ed.Layout(p.dimension()))
	c.lc.watch(c.notifyChange, pair.Modified)
	c.lc.applyThemes(p.Theme)

	if fn := p.OnEditorCreated; fn != nil {
		c.lc.hook("OnEditorCreated", func() { fn(pair, ed) })
	}
}

func (c *DiffController) apply(prev, next DiffProps) {
	ed, eng := c.editor, c.lc.eng

	if prev.Width != next.Width || prev.Height != next.Height {
		c.lc.report("layout", errors.KindSync, ed.Layout(next.dimension()))
	}
	if prev.Original != next.Original {
		c.lc.report("setValue", errors.KindSync, c.pair.Original.SetValue(next.Original))
	}
	if prev.Modified != next.Modified {
		c.lc.report("setValue", errors.KindSync, c.pair.Modified.SetValue(next.Modified))
	}
	if lang := next.originalLanguage(); lang != prev.originalLanguage() {
		c.lc.report("setModelLanguage", errors.KindSync, eng.SetModelLanguage(c.pair.Original, lang))
	}
	if lang := next.modifiedLanguage(); lang != prev.modifiedLanguage() {
		c.lc.report("setModelLanguage", errors.KindSync, eng.SetModelLanguage(c.pair.Modified, lang))
	}
	if prev.Theme != next.Theme {
		c.lc.setTheme(next.Theme)
	}
	if !prev.Options.Equal(next.Options) {
		c.lc.report("updateOptions", errors.KindSync, ed.UpdateOptions(next.Options))
	}
}

func (c *DiffController) notifyChange() {
	fn := c.props.OnChange
	if fn == nil || c.pair.Modified == nil {
		return
	}
	value := c.pair.Modified.Value()
	c.lc.hook("OnChange", func() { fn(value) })
}
