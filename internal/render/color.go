package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an 8-bit RGB color. The zero value is black.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black     = Color{0, 0, 0}
	White     = Color{255, 255, 255}
	Red       = Color{255, 0, 0}
	Green     = Color{0, 255, 0}
	Blue      = Color{0, 0, 255}
	Yellow    = Color{255, 255, 0}
	Gray      = Color{128, 128, 128}
	LightGray = Color{192, 192, 192}
	DarkGray  = Color{64, 64, 64}
	Orange    = Color{255, 200, 0}
	Pink      = Color{255, 175, 175}
	Cyan      = Color{0, 255, 255}
	Magenta   = Color{255, 0, 255}
)

var namedColors = map[string]Color{
	"black":     Black,
	"white":     White,
	"red":       Red,
	"green":     Green,
	"blue":      Blue,
	"yellow":    Yellow,
	"gray":      Gray,
	"grey":      Gray,
	"lightgray": LightGray,
	"lightgrey": LightGray,
	"darkgray":  DarkGray,
	"darkgrey":  DarkGray,
	"orange":    Orange,
	"pink":      Pink,
	"cyan":      Cyan,
	"magenta":   Magenta,
}

// Hex formats c as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses a color name, #RRGGBB, #RGB or rgb(r, g, b).
func ParseColor(value string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if c, ok := namedColors[v]; ok {
		return c, nil
	}
	if strings.HasPrefix(v, "#") {
		if r, g, b, ok := parseHexColor(v); ok {
			return Color{r, g, b}, nil
		}
		return Color{}, fmt.Errorf("invalid hex color %q", value)
	}

	var r, g, b int
	compact := strings.ReplaceAll(v, " ", "")
	if _, err := fmt.Sscanf(compact, "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
		if !inByteRange(r) || !inByteRange(g) || !inByteRange(b) {
			return Color{}, fmt.Errorf("color component out of range in %q", value)
		}
		return Color{uint8(r), uint8(g), uint8(b)}, nil
	}

	return Color{}, fmt.Errorf("unknown color %q", value)
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(value string) Color {
	c, err := ParseColor(value)
	if err != nil {
		panic(err)
	}
	return c
}

func inByteRange(v int) bool {
	return v >= 0 && v <= 255
}

// parseHexColor parses #RRGGBB or #RGB into r,g,b
func parseHexColor(s string) (uint8, uint8, uint8, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 6:
		if rv, err := strconv.ParseUint(s[0:2], 16, 8); err == nil {
			if gv, err := strconv.ParseUint(s[2:4], 16, 8); err == nil {
				if bv, err := strconv.ParseUint(s[4:6], 16, 8); err == nil {
					return uint8(rv), uint8(gv), uint8(bv), true
				}
			}
		}
	case 3:
		r := string([]byte{s[0], s[0]})
		g := string([]byte{s[1], s[1]})
		b := string([]byte{s[2], s[2]})
		if rv, err := strconv.ParseUint(r, 16, 8); err == nil {
			if gv, err := strconv.ParseUint(g, 16, 8); err == nil {
				if bv, err := strconv.ParseUint(b, 16, 8); err == nil {
					return uint8(rv), uint8(gv), uint8(bv), true
				}
			}
		}
	}
	return 0, 0, 0, false
}
