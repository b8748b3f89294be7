// Package native drives an editor engine embedded in the host's native UI.
//
// Engine-wide calls (models, themes, language tags) travel over the
// codeview/engine method channel. Editors and diff editors are platform
// views, so their creation, per-instance calls and disposal go through the
// platform view registry. The native side reports content changes on the
// codeview/model_events event channel.
//
// Importing this package installs [Boot] as the default engine boot:
//
//	import _ "github.com/go-drift/codeview/pkg/engine/native"
package native

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-drift/codeview/pkg/engine"
	"github.com/go-drift/codeview/pkg/errors"
	"github.com/go-drift/codeview/pkg/platform"
	"github.com/go-drift/codeview/pkg/theme"
)

// Channel names and platform view types.
const (
	EngineChannel      = "codeview/engine"
	ModelEventsChannel = "codeview/model_events"

	EditorViewType     = "code_editor"
	DiffEditorViewType = "code_diff_editor"
)

// Engine is an engine.Engine backed by the native editor surface.
type Engine struct {
	channel *platform.MethodChannel
	events  *platform.EventChannel
	sub     *platform.Subscription

	mu     sync.RWMutex
	models map[string]*Model
}

var _ engine.Engine = (*Engine)(nil)

// Boot loads the native engine. It blocks until native acknowledges the
// load and is meant to run on a loader goroutine.
func Boot(ctx context.Context, cfg engine.Config) (engine.Engine, error) {
	e := &Engine{
		channel: platform.NewMethodChannel(EngineChannel),
		events:  platform.NewEventChannel(ModelEventsChannel),
		models:  make(map[string]*Model),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := e.channel.Invoke("load", loadArgs(cfg)); err != nil {
		return nil, fmt.Errorf("native: load engine: %w", err)
	}

	e.sub = e.events.Listen(platform.EventHandler{
		OnEvent: e.handleEvent,
		OnError: func(err error) {
			errors.Report(&errors.EditorError{
				Op:      "native.modelEvents",
				Kind:    errors.KindPlatform,
				Channel: ModelEventsChannel,
				Err:     err,
			})
		},
	})
	return e, nil
}

func loadArgs(cfg engine.Config) map[string]any {
	args := map[string]any{}
	if cfg.AssetSource != "" {
		args["assetSource"] = cfg.AssetSource
	}
	if cfg.Version != "" {
		args["version"] = cfg.Version
	}
	if cfg.Locale != "" {
		args["locale"] = cfg.Locale
	}
	if len(cfg.Paths) > 0 {
		args["paths"] = cfg.Paths
	}
	if len(cfg.Extra) > 0 {
		args["extra"] = cfg.Extra
	}
	return args
}

// Close stops listening for model events. Models and editors stay valid
// but no longer observe native edits.
func (e *Engine) Close() {
	if e.sub != nil {
		e.sub.Cancel()
	}
}

func (e *Engine) lookup(id string) *Model {
	e.mu.RLock()
	m := e.models[id]
	e.mu.RUnlock()
	return m
}

func (e *Engine) ownModel(m engine.Model) (*Model, error) {
	nm, ok := m.(*Model)
	if !ok || nm.eng != e {
		return nil, engine.ErrForeignModel
	}
	return nm, nil
}

// CreateModel implements engine.Engine.
func (e *Engine) CreateModel(value, language string) (engine.Model, error) {
	m := newModel(e, value, language)
	_, err := e.channel.Invoke("createModel", map[string]any{
		"modelId":  m.id,
		"uri":      m.uri,
		"value":    value,
		"language": language,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create model: %w", err)
	}
	e.mu.Lock()
	e.models[m.id] = m
	e.mu.Unlock()
	return m, nil
}

// SetModelLanguage implements engine.Engine.
func (e *Engine) SetModelLanguage(model engine.Model, language string) error {
	m, err := e.ownModel(model)
	if err != nil {
		return err
	}
	if m.isDisposed() {
		return engine.ErrDisposed
	}
	if _, err := e.channel.Invoke("setModelLanguage", map[string]any{
		"modelId":  m.id,
		"language": language,
	}); err != nil {
		return err
	}
	m.mu.Lock()
	m.language = language
	m.mu.Unlock()
	return nil
}

// DefineTheme implements engine.Engine.
func (e *Engine) DefineTheme(name string, def theme.Definition) error {
	_, err := e.channel.Invoke("defineTheme", map[string]any{
		"name":  name,
		"theme": def,
	})
	return err
}

// SetTheme implements engine.Engine.
func (e *Engine) SetTheme(name string) error {
	_, err := e.channel.Invoke("setTheme", map[string]any{
		"name": name,
	})
	return err
}

// Create implements engine.Engine.
func (e *Engine) Create(node engine.MountNode, model engine.Model, opts engine.Options) (engine.Editor, error) {
	if node == nil {
		return nil, engine.ErrNoMountNode
	}
	m, err := e.ownModel(model)
	if err != nil {
		return nil, err
	}
	view, err := platform.GetPlatformViewRegistry().Create(EditorViewType, map[string]any{
		"mountId": node.MountID(),
		"modelId": m.id,
		"options": map[string]any(opts),
	})
	if err != nil {
		return nil, fmt.Errorf("native: create editor: %w", err)
	}
	ev, ok := view.(*editorView)
	if !ok {
		platform.GetPlatformViewRegistry().Dispose(view.ViewID())
		return nil, fmt.Errorf("native: unexpected view type: %T", view)
	}
	return &Editor{view: ev, model: m}, nil
}

// CreateDiffEditor implements engine.Engine.
func (e *Engine) CreateDiffEditor(node engine.MountNode, opts engine.Options) (engine.DiffEditor, error) {
	if node == nil {
		return nil, engine.ErrNoMountNode
	}
	view, err := platform.GetPlatformViewRegistry().Create(DiffEditorViewType, map[string]any{
		"mountId": node.MountID(),
		"options": map[string]any(opts),
	})
	if err != nil {
		return nil, fmt.Errorf("native: create diff editor: %w", err)
	}
	dv, ok := view.(*editorView)
	if !ok {
		platform.GetPlatformViewRegistry().Dispose(view.ViewID())
		return nil, fmt.Errorf("native: unexpected view type: %T", view)
	}
	return &DiffEditor{view: dv, eng: e}, nil
}

// handleEvent processes a content change reported by native:
// {"modelId": string, "value": string, "versionId": number}.
func (e *Engine) handleEvent(data any) {
	ev, ok := data.(map[string]any)
	if !ok {
		reportParse(data)
		return
	}
	id, _ := ev["modelId"].(string)
	value, ok := ev["value"].(string)
	if id == "" || !ok {
		reportParse(data)
		return
	}
	version, _ := ev["versionId"].(float64)

	m := e.lookup(id)
	if m == nil {
		return
	}
	m.handleContentChanged(value, int(version))
}

func reportParse(data any) {
	errors.Report(&errors.EditorError{
		Op:      "native.handleEvent",
		Kind:    errors.KindParsing,
		Channel: ModelEventsChannel,
		Err:     &errors.ParseError{Channel: ModelEventsChannel, DataType: "ModelContentChanged", Got: data},
	})
}

func init() {
	r := platform.GetPlatformViewRegistry()
	r.RegisterFactory(viewFactory(EditorViewType))
	r.RegisterFactory(viewFactory(DiffEditorViewType))
	engine.SetDefaultBoot(Boot)
}
