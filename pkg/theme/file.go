package theme

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// File is a YAML theme document:
//
//	themes:
//	  night-owl:
//	    base: vs-dark
//	    inherit: true
//	    rules:
//	      - token: comment
//	        foreground: "637777"
//	    colors:
//	      editor.background: "#011627"
type File struct {
	Themes map[string]Definition `yaml:"themes"`
}

// ParseFile decodes a theme document. A definition without a base gets
// vs-dark when its editor.background is dark and vs otherwise.
func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	for name, def := range f.Themes {
		if def.Base == "" {
			def.Base = inferBase(def)
			f.Themes[name] = def
		}
	}
	return &f, nil
}

func inferBase(def Definition) Base {
	if bg, ok := def.Colors["editor.background"]; ok {
		if c, err := ParseColor(bg); err == nil && c.IsDark() {
			return BaseDark
		}
	}
	return BaseLight
}

// LoadFile reads a theme document and registers every theme in it. Themes
// are registered in name order; the returned names are those registered
// before the first failure.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("theme file %s not found", path)
		}
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}
	f, err := ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	names := make([]string, 0, len(f.Themes))
	for name := range f.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	registered := make([]string, 0, len(names))
	for _, name := range names {
		if err := Register(name, f.Themes[name]); err != nil {
			return registered, fmt.Errorf("%s: %w", path, err)
		}
		registered = append(registered, name)
	}
	return registered, nil
}
