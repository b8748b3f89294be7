package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-drift/codeview/pkg/editor"
	"github.com/go-drift/codeview/pkg/engine"
)

// Document kinds.
const (
	KindPlain = "plain"
	KindDiff  = "diff"
)

// State is a desired-state document describing one editor:
//
//	kind: diff
//	originalFile: before.go
//	modifiedFile: after.go
//	language: go
//	theme: vs-dark
//	options:
//	  renderSideBySide: false
//
// The *File keys read content from a file relative to the document and
// are mutually exclusive with the inline value.
type State struct {
	Kind string `yaml:"kind,omitempty" toml:"kind,omitempty"`

	Value     string `yaml:"value,omitempty" toml:"value,omitempty"`
	ValueFile string `yaml:"valueFile,omitempty" toml:"valueFile,omitempty"`

	Original         string `yaml:"original,omitempty" toml:"original,omitempty"`
	OriginalFile     string `yaml:"originalFile,omitempty" toml:"originalFile,omitempty"`
	Modified         string `yaml:"modified,omitempty" toml:"modified,omitempty"`
	ModifiedFile     string `yaml:"modifiedFile,omitempty" toml:"modifiedFile,omitempty"`
	OriginalLanguage string `yaml:"originalLanguage,omitempty" toml:"originalLanguage,omitempty"`
	ModifiedLanguage string `yaml:"modifiedLanguage,omitempty" toml:"modifiedLanguage,omitempty"`

	Language string         `yaml:"language,omitempty" toml:"language,omitempty"`
	Theme    string         `yaml:"theme,omitempty" toml:"theme,omitempty"`
	Options  map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
	Width    float64        `yaml:"width,omitempty" toml:"width,omitempty"`
	Height   float64        `yaml:"height,omitempty" toml:"height,omitempty"`
}

// LoadState reads a desired-state document and inlines its content files.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("state file %s not found", path)
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	var s State
	if err := Decode(path, data, &s); err != nil {
		return nil, err
	}
	if err := s.resolve(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &s, nil
}

func (s *State) resolve(dir string) error {
	switch s.Kind {
	case "":
		s.Kind = KindPlain
	case KindPlain, KindDiff:
	default:
		return fmt.Errorf("unknown kind %q", s.Kind)
	}

	if s.Kind == KindPlain {
		if s.Original != "" || s.OriginalFile != "" || s.Modified != "" || s.ModifiedFile != "" {
			return errors.New("original/modified set on a plain document")
		}
		return inline(dir, "value", &s.Value, &s.ValueFile)
	}
	if s.Value != "" || s.ValueFile != "" {
		return errors.New("value set on a diff document")
	}
	if err := inline(dir, "original", &s.Original, &s.OriginalFile); err != nil {
		return err
	}
	return inline(dir, "modified", &s.Modified, &s.ModifiedFile)
}

// inline replaces *value with the contents of *file when one is named.
func inline(dir, key string, value, file *string) error {
	if *file == "" {
		return nil
	}
	if *value != "" {
		return fmt.Errorf("both %s and %sFile set", key, key)
	}
	path := *file
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%sFile: %w", key, err)
	}
	*value = string(data)
	return nil
}

// IsDiff reports whether the document describes a diff editor.
func (s *State) IsDiff() bool { return s.Kind == KindDiff }

// Props returns the plain editor description.
func (s *State) Props() editor.Props {
	return editor.Props{
		Value:    s.Value,
		Language: s.Language,
		Theme:    s.Theme,
		Options:  engine.Options(s.Options),
		Width:    s.Width,
		Height:   s.Height,
	}
}

// DiffProps returns the diff editor description.
func (s *State) DiffProps() editor.DiffProps {
	return editor.DiffProps{
		Original:         s.Original,
		Modified:         s.Modified,
		OriginalLanguage: s.OriginalLanguage,
		ModifiedLanguage: s.ModifiedLanguage,
		Language:         s.Language,
		Theme:            s.Theme,
		Options:          engine.Options(s.Options),
		Width:            s.Width,
		Height:           s.Height,
	}
}
