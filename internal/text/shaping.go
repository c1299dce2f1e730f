package text

import (
	"github.com/momogentoo/pdfprintln/internal/render"
)

// TextShaper turns font metrics into point measurements for a given size.
type TextShaper struct {
	metrics render.FontMetrics
}

// NewTextShaper creates a shaper over the metrics of one font.
func NewTextShaper(metrics render.FontMetrics) *TextShaper {
	return &TextShaper{metrics: metrics}
}

// MeasureText returns the advance width of text at size in points.
func (s *TextShaper) MeasureText(text string, size float64) float64 {
	return s.metrics.StringWidth(text) * size / 1000
}

// LineHeight returns the font bounding box height at size in points.
func (s *TextShaper) LineHeight(size float64) float64 {
	return s.metrics.BoundingBoxHeight() / 1000 * size
}

// SplitTextToLines wraps text at word boundaries so that every line fits
// maxWidth at size, except lines holding a single word that is wider on its
// own.
func (s *TextShaper) SplitTextToLines(text string, size, maxWidth float64) []string {
	return Wrap(text, maxWidth, func(segment string) float64 {
		return s.MeasureText(segment, size)
	})
}
