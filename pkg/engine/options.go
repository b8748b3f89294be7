package engine

import (
	"maps"
	"reflect"
)

// Options is an opaque option set forwarded to editor instances. Keys follow
// the engine's own option names (readOnly, fontSize, minimap, ...).
type Options map[string]any

// Option keys interpreted by codeview itself.
const (
	OptionReadOnly        = "readOnly"
	OptionAutomaticLayout = "automaticLayout"

	// optionReadOnlyAlias is the lowercase spelling older embedders use.
	optionReadOnlyAlias = "readonly"
)

// ReadOnly reports whether the options mark the instance read-only.
func (o Options) ReadOnly() bool {
	for _, key := range []string{OptionReadOnly, optionReadOnlyAlias} {
		if v, ok := o[key].(bool); ok && v {
			return true
		}
	}
	return false
}

// Equal reports whether o and other hold the same content. Nil and empty
// option sets are equal.
func (o Options) Equal(other Options) bool {
	if len(o) == 0 && len(other) == 0 {
		return true
	}
	return reflect.DeepEqual(map[string]any(o), map[string]any(other))
}

// Clone returns a shallow copy of o.
func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}
	return maps.Clone(o)
}

// With returns a copy of o with key set to value.
func (o Options) With(key string, value any) Options {
	c := o.Clone()
	c[key] = value
	return c
}

// Merge returns a copy of o overlaid with every entry of over.
func (o Options) Merge(over Options) Options {
	c := o.Clone()
	maps.Copy(c, over)
	return c
}
