// Package pdf implements render.Backend on top of go-pdf/fpdf.
package pdf

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/momogentoo/pdfprintln/internal/observability"
	"github.com/momogentoo/pdfprintln/internal/render"
)

var _ render.Backend = (*Renderer)(nil)

// Options contains options for the fpdf backend
type Options struct {
	Info render.Info
	// FontFamily and FontData register a TrueType font under that family
	// name; FontData empty means only the core fonts are available.
	FontFamily string
	FontStyle  string
	FontData   []byte
	// Compress toggles stream compression.
	Compress bool
	// Debug enables verbose logging
	Debug  bool
	Logger observability.Logger
}

// Renderer draws pages with fpdf
type Renderer struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	utf8Fonts map[string]bool
	logger    observability.Logger
	debug     bool

	pages  int
	stream *stream
	closed bool
}

// NewRenderer creates an empty document
func NewRenderer(options Options) (*Renderer, error) {
	logger := options.Logger
	if logger == nil {
		logger = observability.NopLogger{}
	}

	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(options.Compress)
	pdf.SetTitle(options.Info.Title, true)
	pdf.SetAuthor(options.Info.Author, true)
	pdf.SetSubject(options.Info.Subject, true)
	pdf.SetKeywords(options.Info.Keywords, true)
	pdf.SetCreator(options.Info.Creator, true)

	r := &Renderer{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		utf8Fonts: make(map[string]bool),
		logger:    logger,
		debug:     options.Debug,
	}
	if len(options.FontData) > 0 {
		if options.FontFamily == "" {
			return nil, errors.New("pdf: font data given without a family name")
		}
		pdf.AddUTF8FontFromBytes(options.FontFamily, options.FontStyle, options.FontData)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("failed to register font %s: %w", options.FontFamily, err)
		}
		r.utf8Fonts[fontKey(render.Font{Family: options.FontFamily, Style: options.FontStyle})] = true
		if r.debug {
			r.logger.Debug("registered TrueType font", observability.String("family", options.FontFamily))
		}
	}
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return r, nil
}

func fontKey(f render.Font) string {
	style := strings.ToUpper(f.Style)
	if style == "IB" {
		style = "BI"
	}
	return strings.ToLower(f.Family) + style
}

// NewPage appends a page. Quarter-turned pages are created in landscape
// format so drawing uses the rotated width and height.
func (r *Renderer) NewPage(mediaBox render.Size, rotation int) (*render.Page, error) {
	if r.closed {
		return nil, errors.New("pdf: document closed")
	}
	page := &render.Page{Number: r.pages + 1, MediaBox: mediaBox, Rotation: rotation}
	orientation := "P"
	if page.EffectiveWidth() != mediaBox.Width {
		orientation = "L"
	}
	r.pdf.AddPageFormat(orientation, fpdf.SizeType{Wd: mediaBox.Width, Ht: mediaBox.Height})
	if err := r.pdf.Error(); err != nil {
		return nil, err
	}
	r.pages++
	if r.debug {
		r.logger.Debug("fpdf page added",
			observability.Int("page", page.Number),
			observability.String("orientation", orientation),
		)
	}
	return page, nil
}

// OpenStream returns the drawing stream of page, which must be the page
// added last.
func (r *Renderer) OpenStream(page *render.Page) (render.Stream, error) {
	if page == nil || page.Number != r.pages {
		return nil, errors.New("pdf: only the last added page can be drawn on")
	}
	if r.stream != nil && !r.stream.closed {
		return nil, fmt.Errorf("pdf: stream of page %d is still open", r.stream.page.Number)
	}
	r.stream = &stream{r: r, page: page, height: page.EffectiveHeight()}
	return r.stream, nil
}

// Metrics loads font and returns its measurements.
func (r *Renderer) Metrics(font render.Font) (render.FontMetrics, error) {
	if !r.knownFont(font) {
		return nil, fmt.Errorf("pdf: font %s is neither a core font nor registered", font)
	}
	if err := r.selectFont(font, 0); err != nil {
		return nil, err
	}
	m := &metrics{r: r, font: font}
	desc := r.pdf.GetFontDesc(font.Family, font.Style)
	m.bbox = float64(desc.FontBBox.Ymax - desc.FontBBox.Ymin)
	if m.bbox <= 0 {
		m.bbox = coreBBoxHeight(font)
	}
	if r.debug {
		r.logger.Debug("font metrics",
			observability.String("font", font.String()),
			observability.Float64("bbox", m.bbox),
		)
	}
	return m, nil
}

// knownFont guards SetFont, whose error would poison the whole document.
func (r *Renderer) knownFont(font render.Font) bool {
	if r.utf8Fonts[fontKey(font)] {
		return true
	}
	return coreFamilies[strings.ToLower(font.Family)]
}

func (r *Renderer) selectFont(font render.Font, size float64) error {
	if size <= 0 {
		size = 12
	}
	r.pdf.SetFont(font.Family, font.Style, size)
	if err := r.pdf.Error(); err != nil {
		return fmt.Errorf("failed to set font %s: %w", font, err)
	}
	return nil
}

func (r *Renderer) encode(font render.Font, s string) string {
	if r.utf8Fonts[fontKey(font)] {
		return s
	}
	return r.translate(s)
}

// Save writes the document to w. The document cannot be drawn on afterwards.
func (r *Renderer) Save(w io.Writer) error {
	if r.closed {
		return errors.New("pdf: document closed")
	}
	r.closed = true
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// Close discards the document.
func (r *Renderer) Close() error {
	r.closed = true
	return nil
}

type stream struct {
	r      *Renderer
	page   *render.Page
	height float64
	closed bool
}

func (s *stream) check() error {
	if s.closed {
		return errors.New("pdf: draw on closed stream")
	}
	return nil
}

func (s *stream) FillRect(x, y, w, h float64, c render.Color) error {
	if err := s.check(); err != nil {
		return err
	}
	pdf := s.r.pdf
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	pdf.Rect(x, s.height-(y+h), w, h, "F")
	return pdf.Error()
}

func (s *stream) DrawText(x, y float64, font render.Font, size float64, c render.Color, text string) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := s.r.selectFont(font, size); err != nil {
		return err
	}
	pdf := s.r.pdf
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	pdf.Text(x, s.height-y, s.r.encode(font, text))
	if s.r.debug {
		s.r.logger.Debug("text",
			observability.Int("page", s.page.Number),
			observability.Float64("x", x),
			observability.Float64("y", y),
			observability.String("text", text),
		)
	}
	return pdf.Error()
}

func (s *stream) Close() error {
	if s.closed {
		return errors.New("pdf: stream closed twice")
	}
	s.closed = true
	return nil
}

type metrics struct {
	r    *Renderer
	font render.Font
	bbox float64
}

func (m *metrics) StringWidth(text string) float64 {
	if err := m.r.selectFont(m.font, 0); err != nil {
		return 0
	}
	return float64(m.r.pdf.GetStringSymbolWidth(m.r.encode(m.font, text)))
}

func (m *metrics) BoundingBoxHeight() float64 {
	return m.bbox
}
