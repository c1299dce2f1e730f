// Package render defines the drawing contract the layout engine needs from a
// PDF backend. Coordinates are in points with the origin at the bottom-left
// corner of the page as the reader sees it; text is positioned by baseline.
package render

import "io"

// Size is a page media box in points.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle; (X, Y) is the bottom-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Font identifies a face known to a backend.
type Font struct {
	Family string
	// Style is any combination of "B" and "I".
	Style string
}

func (f Font) String() string {
	if f.Style == "" {
		return f.Family
	}
	return f.Family + "-" + f.Style
}

// Page is a page created by a backend.
type Page struct {
	// Number is the 1-based index in creation order.
	Number   int
	MediaBox Size
	// Rotation is 0, 90, 180 or 270 degrees.
	Rotation int
}

// EffectiveWidth is the width of the page as it is read, which is the media
// box height when the page is rotated by a quarter turn.
func (p *Page) EffectiveWidth() float64 {
	if p.quarterTurn() {
		return p.MediaBox.Height
	}
	return p.MediaBox.Width
}

// EffectiveHeight is the height of the page as it is read.
func (p *Page) EffectiveHeight() float64 {
	if p.quarterTurn() {
		return p.MediaBox.Width
	}
	return p.MediaBox.Height
}

func (p *Page) quarterTurn() bool {
	r := ((p.Rotation % 360) + 360) % 360
	return r == 90 || r == 270
}

// FontMetrics reports glyph geometry in thousandths of an em.
type FontMetrics interface {
	// StringWidth is the sum of the advance widths of text.
	StringWidth(text string) float64
	// BoundingBoxHeight is the height of the font bounding box.
	BoundingBoxHeight() float64
}

// Stream draws onto a single page. All coordinates are effective page
// coordinates, so a rotated page is drawn on as if it were upright.
type Stream interface {
	FillRect(x, y, w, h float64, c Color) error
	DrawText(x, y float64, font Font, size float64, c Color, text string) error
	Close() error
}

// Backend creates pages, measures fonts and serializes the document.
type Backend interface {
	NewPage(mediaBox Size, rotation int) (*Page, error)
	OpenStream(page *Page) (Stream, error)
	Metrics(font Font) (FontMetrics, error)
	Save(w io.Writer) error
	Close() error
}

// Info is document metadata passed to backends that support it.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
}
