package theme

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

var (
	tableMu sync.RWMutex
	table   = builtinTable()
)

// Register adds or replaces a theme in the process-wide table. Engine-native
// names cannot be registered. Editors created afterwards pick it up; editors
// that already exist are unaffected until they activate it by name.
func Register(name string, def Definition) error {
	if name == "" {
		return fmt.Errorf("theme: empty name")
	}
	if IsBuiltin(name) {
		return fmt.Errorf("theme: %q is engine-native", name)
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("theme %q: %w", name, err)
	}
	tableMu.Lock()
	table[name] = def.Normalize()
	tableMu.Unlock()
	return nil
}

// Lookup returns the definition registered under name.
func Lookup(name string) (Definition, bool) {
	tableMu.RLock()
	def, ok := table[name]
	tableMu.RUnlock()
	return def, ok
}

// Table returns a copy of the registered themes.
func Table() map[string]Definition {
	tableMu.RLock()
	defer tableMu.RUnlock()
	return maps.Clone(table)
}

// Names returns the registered theme names, sorted.
func Names() []string {
	tableMu.RLock()
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	tableMu.RUnlock()
	slices.Sort(names)
	return names
}

// Known reports whether name can be activated: engine-native or registered.
func Known(name string) bool {
	if IsBuiltin(name) {
		return true
	}
	_, ok := Lookup(name)
	return ok
}

// Apply hands every registered theme to define, in name order. Defining a
// theme with the same name and body twice is harmless, so Apply may run
// once per editor creation. The first define error stops the walk.
func Apply(define func(name string, def Definition) error) error {
	for _, name := range Names() {
		def, ok := Lookup(name)
		if !ok {
			continue
		}
		if err := define(name, def); err != nil {
			return fmt.Errorf("define theme %q: %w", name, err)
		}
	}
	return nil
}

// ResetForTest restores the table to the shipped themes.
func ResetForTest() {
	tableMu.Lock()
	table = builtinTable()
	tableMu.Unlock()
}
