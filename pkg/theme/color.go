package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a parsed theme color with optional alpha.
type Color struct {
	colorful.Color
	// Alpha is 0-255; 255 means opaque.
	Alpha uint8
}

// ParseColor accepts rgb, rrggbb or rrggbbaa, with or without a leading '#'.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	alpha := uint8(0xff)
	switch len(hex) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in %q", s)
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{Color: c, Alpha: alpha}, nil
}

// String returns #rrggbb, or #rrggbbaa when the color is translucent.
func (c Color) String() string {
	if c.Alpha == 0xff {
		return c.Hex()
	}
	return fmt.Sprintf("%s%02x", c.Hex(), c.Alpha)
}

// RuleHex returns rrggbb, the form token rules use. Alpha is dropped.
func (c Color) RuleHex() string {
	return strings.TrimPrefix(c.Hex(), "#")
}

// IsDark reports whether the color is perceptually dark.
func (c Color) IsDark() bool {
	l, _, _ := c.Lab()
	return l < 0.5
}
