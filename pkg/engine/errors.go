package engine

import "errors"

// Sentinel errors for engine operations.
var (
	// ErrDisposed is returned when operating on a disposed model or editor.
	ErrDisposed = errors.New("engine: disposed")

	// ErrNoMountNode is returned when creating an editor without a mount node.
	ErrNoMountNode = errors.New("engine: no mount node")

	// ErrNoBoot is returned by the default loader when no engine
	// implementation has been installed.
	ErrNoBoot = errors.New("engine: no boot function installed")

	// ErrForeignModel is returned when a model from another engine is passed in.
	ErrForeignModel = errors.New("engine: model belongs to another engine")

	// ErrIncompletePair is returned when a diff model pair has a nil side.
	ErrIncompletePair = errors.New("engine: diff model pair is incomplete")
)
