// Package errors provides structured error reporting for codeview.
//
// Nothing in the reconciliation layer raises to the embedding application:
// failures that cannot be surfaced through a hook (an engine that never
// loads, a creation the engine rejected, a panicking callback) are sent to
// the process-wide [ErrorHandler] instead.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPlatform indicates a platform channel or native bridge error.
	KindPlatform
	// KindParsing indicates a malformed event or document.
	KindParsing
	// KindLoad indicates the editor engine failed to load.
	KindLoad
	// KindCreate indicates the engine rejected editor or model creation.
	KindCreate
	// KindSync indicates a mutation issued during a reconciliation pass failed.
	KindSync
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates a configuration or desired-state file could not
	// be read.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindParsing:
		return "parsing"
	case KindLoad:
		return "load"
	case KindCreate:
		return "create"
	case KindSync:
		return "sync"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// EditorError represents a structured error in codeview.
type EditorError struct {
	// Op is the operation that failed (e.g., "editor.Controller.create").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Channel is the platform channel name, if applicable.
	Channel string
	// ViewType is the platform view type involved, if applicable.
	ViewType string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *EditorError) Error() string {
	switch {
	case e.Channel != "":
		return fmt.Sprintf("%s [%s] channel=%s: %v", e.Op, e.Kind, e.Channel, e.Err)
	case e.ViewType != "":
		return fmt.Sprintf("%s [%s] view=%s: %v", e.Op, e.Kind, e.ViewType, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *EditorError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "editor.onChange").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a failure to parse event data.
type ParseError struct {
	// Channel is the platform channel that received the event.
	Channel string
	// DataType is the expected type name.
	DataType string
	// Got is the actual data received.
	Got any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from channel %s: got %T", e.DataType, e.Channel, e.Got)
}

// ErrorHandler receives errors reported by codeview.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *EditorError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
