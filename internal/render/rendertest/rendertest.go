// Package rendertest provides an in-memory render.Backend that records every
// call, with fixed-pitch metrics so geometry in tests is easy to predict.
package rendertest

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/momogentoo/pdfprintln/internal/render"
)

// Default metrics: every rune advances half an em and the bounding box is
// one em tall, so at size s a string of n runes is n*s/2 wide and a line is
// s high.
const (
	DefaultAdvance = 500
	DefaultBBox    = 1000
)

// Op kinds recorded by a Stream.
const (
	OpFillRect = "rect"
	OpText     = "text"
)

// Op is one recorded drawing call.
type Op struct {
	Kind  string
	Page  int
	X, Y  float64
	W, H  float64
	Font  render.Font
	Size  float64
	Color render.Color
	Text  string
}

// Backend is a recording render.Backend.
type Backend struct {
	Advance float64
	BBox    float64

	Pages   []*render.Page
	Ops     []Op
	Streams []*Stream
	Saved   int
	Closed  bool

	// FailNewPage makes NewPage return this error when set.
	FailNewPage error
	// FailSave makes Save return this error when set.
	FailSave error
}

// New returns a Backend with the default metrics.
func New() *Backend {
	return &Backend{Advance: DefaultAdvance, BBox: DefaultBBox}
}

func (b *Backend) NewPage(mediaBox render.Size, rotation int) (*render.Page, error) {
	if b.FailNewPage != nil {
		return nil, b.FailNewPage
	}
	if b.Closed {
		return nil, errors.New("rendertest: backend closed")
	}
	p := &render.Page{Number: len(b.Pages) + 1, MediaBox: mediaBox, Rotation: rotation}
	b.Pages = append(b.Pages, p)
	return p, nil
}

func (b *Backend) OpenStream(page *render.Page) (render.Stream, error) {
	for _, s := range b.Streams {
		if !s.closed {
			return nil, fmt.Errorf("rendertest: stream for page %d still open", s.page.Number)
		}
	}
	s := &Stream{b: b, page: page}
	b.Streams = append(b.Streams, s)
	return s, nil
}

func (b *Backend) Metrics(font render.Font) (render.FontMetrics, error) {
	if font.Family == "" {
		return nil, errors.New("rendertest: empty font family")
	}
	return metrics{advance: b.Advance, bbox: b.BBox}, nil
}

func (b *Backend) Save(w io.Writer) error {
	if b.FailSave != nil {
		return b.FailSave
	}
	b.Saved++
	_, err := fmt.Fprintf(w, "%%PDF-rendertest pages=%d ops=%d\n", len(b.Pages), len(b.Ops))
	return err
}

func (b *Backend) Close() error {
	b.Closed = true
	return nil
}

// Texts returns the recorded text ops in drawing order.
func (b *Backend) Texts() []Op {
	return b.filter(OpText)
}

// Rects returns the recorded rectangle ops in drawing order.
func (b *Backend) Rects() []Op {
	return b.filter(OpFillRect)
}

// TextsOnPage returns the text ops drawn on page n.
func (b *Backend) TextsOnPage(n int) []Op {
	var out []Op
	for _, op := range b.Texts() {
		if op.Page == n {
			out = append(out, op)
		}
	}
	return out
}

func (b *Backend) filter(kind string) []Op {
	var out []Op
	for _, op := range b.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Stream records calls into its Backend.
type Stream struct {
	b      *Backend
	page   *render.Page
	closed bool
}

// Closed reports whether Close has been called.
func (s *Stream) Closed() bool { return s.closed }

func (s *Stream) FillRect(x, y, w, h float64, c render.Color) error {
	if s.closed {
		return errors.New("rendertest: draw on closed stream")
	}
	s.b.Ops = append(s.b.Ops, Op{Kind: OpFillRect, Page: s.page.Number, X: x, Y: y, W: w, H: h, Color: c})
	return nil
}

func (s *Stream) DrawText(x, y float64, font render.Font, size float64, c render.Color, text string) error {
	if s.closed {
		return errors.New("rendertest: draw on closed stream")
	}
	s.b.Ops = append(s.b.Ops, Op{Kind: OpText, Page: s.page.Number, X: x, Y: y, Font: font, Size: size, Color: c, Text: text})
	return nil
}

func (s *Stream) Close() error {
	if s.closed {
		return errors.New("rendertest: stream closed twice")
	}
	s.closed = true
	return nil
}

type metrics struct {
	advance float64
	bbox    float64
}

func (m metrics) StringWidth(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * m.advance
}

func (m metrics) BoundingBoxHeight() float64 { return m.bbox }
