// Package engine defines the contract of the external code editor engine
// that codeview drives, and the process-wide loader that brings it up.
//
// The engine owns text models, editor and diff editor instances, and the
// global theme table. It is loaded at most once per [Loader] and shared by
// every widget in the process; nothing in this package ever unloads it.
//
// Two implementations ship with the module: package native talks to an
// embedded editor surface over platform channels, and package headless keeps
// everything in process.
package engine

import "github.com/go-drift/codeview/pkg/theme"

// MountNode is the host region an editor instance attaches to. The
// container shell reports it once it exists.
type MountNode interface {
	// MountID identifies the node to the engine.
	MountID() int64
}

// Range is a 1-based line/column span inside a model.
type Range struct {
	StartLineNumber int `json:"startLineNumber"`
	StartColumn     int `json:"startColumn"`
	EndLineNumber   int `json:"endLineNumber"`
	EndColumn       int `json:"endColumn"`
}

// EditOperation replaces Range with Text.
type EditOperation struct {
	Range Range  `json:"range"`
	Text  string `json:"text"`
}

// Dimension is an editor size in logical pixels.
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Model is a text model: content plus a language tag.
type Model interface {
	// ID identifies the model within its engine.
	ID() string

	// URI is the engine-visible resource name of the model.
	URI() string

	// Value returns the current content.
	Value() string

	// SetValue replaces the whole content. The engine does not record this
	// as an undoable edit.
	SetValue(value string) error

	// Language returns the language tag.
	Language() string

	// FullRange spans the entire content.
	FullRange() Range

	// OnDidChangeContent registers fn to run after every content change and
	// returns a function that removes it.
	OnDidChangeContent(fn func()) (unsubscribe func())

	// Dispose releases the model.
	Dispose()
}

// Editor is a single-model editor instance.
type Editor interface {
	// Model returns the model the editor displays.
	Model() Model

	// SetValue replaces the model content directly.
	SetValue(value string) error

	// ExecuteEdits applies edits as an undoable operation attributed to source.
	ExecuteEdits(source string, edits []EditOperation) error

	// PushUndoStop closes the current undo group so later edits start a new one.
	PushUndoStop() error

	// UpdateOptions forwards an option set to the instance.
	UpdateOptions(opts Options) error

	// Layout resizes the instance.
	Layout(dim Dimension) error

	// Dispose tears the instance down. It does not dispose the model.
	Dispose()
}

// DiffModel is the original/modified pair shown by a diff editor.
type DiffModel struct {
	Original Model
	Modified Model
}

// DiffEditor is a side-by-side diff editor instance.
type DiffEditor interface {
	// Model returns the bound pair. Both fields are nil before SetModel.
	Model() DiffModel

	// SetModel binds both sides in one step.
	SetModel(pair DiffModel) error

	// UpdateOptions forwards an option set to the instance.
	UpdateOptions(opts Options) error

	// Layout resizes the instance.
	Layout(dim Dimension) error

	// Dispose tears the instance down. It does not dispose the models.
	Dispose()
}

// Engine is a loaded editor engine.
type Engine interface {
	// CreateModel creates a text model.
	CreateModel(value, language string) (Model, error)

	// SetModelLanguage retags a model.
	SetModelLanguage(model Model, language string) error

	// Create builds an editor on node displaying model.
	Create(node MountNode, model Model, opts Options) (Editor, error)

	// CreateDiffEditor builds a diff editor on node. Models are bound
	// afterwards with DiffEditor.SetModel.
	CreateDiffEditor(node MountNode, opts Options) (DiffEditor, error)

	// DefineTheme registers or replaces a named theme.
	DefineTheme(name string, def theme.Definition) error

	// SetTheme activates a theme for every editor of this engine.
	SetTheme(name string) error
}
