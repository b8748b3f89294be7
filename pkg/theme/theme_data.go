// Package theme holds the process-wide editor theme table.
//
// Themes are engine-global: defining one makes it available to every editor
// of that engine, and activating one restyles all of them at once. Widgets
// register the whole table when they create their editor and afterwards only
// activate themes by name.
package theme

import (
	"fmt"
	"maps"
	"slices"
)

// Base names the engine-native theme a definition extends.
type Base string

// Engine-native themes. They are always available and never redefined.
const (
	BaseLight        Base = "vs"
	BaseDark         Base = "vs-dark"
	BaseHighContrast Base = "hc-black"
)

// DefaultName is the theme activated when a widget does not name one.
const DefaultName = string(BaseLight)

// IsBuiltin reports whether name is an engine-native theme.
func IsBuiltin(name string) bool {
	switch Base(name) {
	case BaseLight, BaseDark, BaseHighContrast:
		return true
	}
	return false
}

// TokenRule styles one token scope.
type TokenRule struct {
	Token      string `yaml:"token" json:"token"`
	Foreground string `yaml:"foreground,omitempty" json:"foreground,omitempty"`
	Background string `yaml:"background,omitempty" json:"background,omitempty"`
	FontStyle  string `yaml:"fontStyle,omitempty" json:"fontStyle,omitempty"`
}

// Definition is a theme body as the engine expects it.
type Definition struct {
	// Base is the engine-native theme this one extends.
	Base Base `yaml:"base" json:"base"`

	// Inherit keeps the base theme's rules underneath Rules.
	Inherit bool `yaml:"inherit" json:"inherit"`

	// Rules style token scopes. Colors are RRGGBB without a leading '#'.
	Rules []TokenRule `yaml:"rules" json:"rules"`

	// Colors style editor chrome, keyed by color id
	// (e.g. "editor.background"). Values are #RRGGBB or #RRGGBBAA.
	Colors map[string]string `yaml:"colors" json:"colors"`
}

// Validate checks the base and every color of d.
func (d Definition) Validate() error {
	if !IsBuiltin(string(d.Base)) {
		return fmt.Errorf("theme: unknown base %q", d.Base)
	}
	for i, r := range d.Rules {
		for _, c := range []string{r.Foreground, r.Background} {
			if c == "" {
				continue
			}
			if _, err := ParseColor(c); err != nil {
				return fmt.Errorf("theme: rule %d (%q): %w", i, r.Token, err)
			}
		}
	}
	for id, c := range d.Colors {
		if _, err := ParseColor(c); err != nil {
			return fmt.Errorf("theme: color %q: %w", id, err)
		}
	}
	return nil
}

// Normalize returns a copy of d with every color in canonical form: rule
// colors as rrggbb, editor colors as #rrggbb or #rrggbbaa. d must be valid.
func (d Definition) Normalize() Definition {
	out := Definition{
		Base:    d.Base,
		Inherit: d.Inherit,
		Rules:   make([]TokenRule, len(d.Rules)),
		Colors:  make(map[string]string, len(d.Colors)),
	}
	for i, r := range d.Rules {
		if c, err := ParseColor(r.Foreground); err == nil {
			r.Foreground = c.RuleHex()
		}
		if c, err := ParseColor(r.Background); err == nil {
			r.Background = c.RuleHex()
		}
		out.Rules[i] = r
	}
	for id, v := range d.Colors {
		if c, err := ParseColor(v); err == nil {
			v = c.String()
		}
		out.Colors[id] = v
	}
	return out
}

// Equal reports whether d and other have the same body.
func (d Definition) Equal(other Definition) bool {
	return d.Base == other.Base &&
		d.Inherit == other.Inherit &&
		slices.Equal(d.Rules, other.Rules) &&
		maps.Equal(d.Colors, other.Colors)
}
