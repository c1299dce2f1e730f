package layout

import (
	"fmt"
	"strings"

	"github.com/momogentoo/pdfprintln/internal/render"
)

// Alignment is the horizontal placement of a line of text.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignMiddle
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignMiddle:
		return "middle"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlignment accepts left, right, middle or center.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "":
		return AlignLeft, nil
	case "middle", "center", "centre":
		return AlignMiddle, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("unknown alignment %q", s)
}

// TextAttributes styles a single draw or a row cell.
type TextAttributes struct {
	// FontSize in points; zero means the session font size.
	FontSize   float64
	Foreground render.Color
	// Background is nil when nothing is painted behind the text.
	Background *render.Color
	// Box is the painted background area. Rows compute it per cell when nil.
	Box   *render.Rect
	Align Alignment
}

// WithBackground returns a copy of a that paints c behind the text.
func (a TextAttributes) WithBackground(c render.Color) TextAttributes {
	a.Background = &c
	return a
}

// WithBox returns a copy of a with the background area set.
func (a TextAttributes) WithBox(r render.Rect) TextAttributes {
	a.Box = &r
	return a
}

func (a TextAttributes) size(fallback float64) float64 {
	if a.FontSize > 0 {
		return a.FontSize
	}
	return fallback
}
