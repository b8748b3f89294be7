// Package config reads codeview.yaml (or codeview.toml) and desired-state
// documents.
//
// A project configuration looks like:
//
//	loader:
//	  assetSource: https://cdn.example.com/editor
//	  version: v0.52.2
//	  locale: de
//	themes:
//	  - themes/night.yaml
//	debounce: 50ms
//
// Every key is optional. Theme paths are relative to the configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/codeview/pkg/editor"
	"github.com/go-drift/codeview/pkg/engine"
	"github.com/go-drift/codeview/pkg/theme"
)

// FileNames lists the configuration file names looked up by LoadOptional,
// in order.
var FileNames = []string{"codeview.yaml", "codeview.yml", "codeview.toml"}

// Config represents the optional project configuration.
type Config struct {
	Loader   engine.Config `yaml:"loader" toml:"loader"`
	Themes   []string      `yaml:"themes,omitempty" toml:"themes,omitempty"`
	Debounce Duration      `yaml:"debounce,omitempty" toml:"debounce,omitempty"`
}

// Duration is a time.Duration written as "50ms" in configuration files.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %s", text)
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration the way UnmarshalText reads it.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Resolved contains resolved configuration values.
type Resolved struct {
	// Root is the directory the configuration was looked up in.
	Root string
	// Path is the configuration file, empty when none exists.
	Path string

	Loader   engine.Config
	Themes   []string
	Debounce time.Duration
}

// LoadOptional reads the first configuration file from FileNames found in
// dir. Without one it returns an empty Config and an empty path.
func LoadOptional(dir string) (*Config, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to read %s: %w", name, err)
		}
		var cfg Config
		if err := Decode(path, data, &cfg); err != nil {
			return nil, "", err
		}
		return &cfg, path, nil
	}
	return &Config{}, "", nil
}

// Resolve loads the configuration in dir (if present) and resolves
// defaults: theme paths become absolute and the engine version is
// canonicalized.
func Resolve(dir string) (*Resolved, error) {
	cfg, path, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	version, err := resolveVersion(cfg.Loader.Version)
	if err != nil {
		return nil, err
	}
	loader := cfg.Loader
	loader.Version = version

	base := dir
	if path != "" {
		base = filepath.Dir(path)
	}
	themes := make([]string, 0, len(cfg.Themes))
	for _, p := range cfg.Themes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		themes = append(themes, p)
	}

	return &Resolved{
		Root:     dir,
		Path:     path,
		Loader:   loader,
		Themes:   themes,
		Debounce: time.Duration(cfg.Debounce),
	}, nil
}

// resolveVersion maps "" and "latest" to "" and everything else to a
// canonical semantic version.
func resolveVersion(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" || v == "latest" {
		return "", nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid engine version %q", v)
	}
	return semver.Canonical(v), nil
}

// LoadThemes registers the themes of every configured theme file and
// returns the registered names in file order.
func (r *Resolved) LoadThemes() ([]string, error) {
	var names []string
	for _, path := range r.Themes {
		got, err := theme.LoadFile(path)
		names = append(names, got...)
		if err != nil {
			return names, err
		}
	}
	return names, nil
}

// EditorOptions returns the controller options the configuration implies.
func (r *Resolved) EditorOptions() []editor.Option {
	cfg := r.Loader
	opts := []editor.Option{editor.WithLoaderConfig(&cfg)}
	if r.Debounce > 0 {
		opts = append(opts, editor.WithDebounce(r.Debounce))
	}
	return opts
}

// Decode unmarshals data into v, choosing the format from the extension of
// path: .yaml and .yml are YAML, .toml is TOML.
func Decode(path string, data []byte, v any) error {
	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		return fmt.Errorf("%s: unsupported format (want .yaml, .yml or .toml)", name)
	}
	return nil
}
