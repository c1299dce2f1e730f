// Package canvasrenderer implements render.Backend with tdewolff/canvas.
// Pages are kept in memory and written out as PDF on Save.
package canvasrenderer

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/momogentoo/pdfprintln/internal/observability"
	"github.com/momogentoo/pdfprintln/internal/render"
)

// canvas works in millimetres, the layout in points.
const (
	PtToMm = 25.4 / 72
	MmToPt = 1.0 / PtToMm

	// metricsSize is the face size used for measuring, so that widths in
	// points equal thousandths of an em.
	metricsSize = 1000
)

var _ render.Backend = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	Info render.Info
	// FontFamily and FontData register a TrueType font; every other family
	// falls back to the Go fonts.
	FontFamily string
	FontData   []byte
	Logger     observability.Logger
}

// Renderer draws pages with canvas.
type Renderer struct {
	info     render.Info
	logger   observability.Logger
	families map[string]*canvas.FontFamily
	custom   string

	pages  []*pageCanvas
	closed bool
}

type pageCanvas struct {
	page *render.Page
	w, h float64
	c    *canvas.Canvas
	ctx  *canvas.Context
}

// NewRenderer creates an empty document.
func NewRenderer(options Options) (*Renderer, error) {
	logger := options.Logger
	if logger == nil {
		logger = observability.NopLogger{}
	}
	r := &Renderer{
		info:     options.Info,
		logger:   logger,
		families: make(map[string]*canvas.FontFamily),
	}

	goFamily := canvas.NewFontFamily("go")
	for style, data := range map[canvas.FontStyle][]byte{
		canvas.FontRegular:                  goregular.TTF,
		canvas.FontBold:                     gobold.TTF,
		canvas.FontItalic:                   goitalic.TTF,
		canvas.FontBold | canvas.FontItalic: gobolditalic.TTF,
	} {
		if err := goFamily.LoadFont(data, 0, style); err != nil {
			return nil, fmt.Errorf("failed to load Go font: %w", err)
		}
	}
	r.families[""] = goFamily

	if len(options.FontData) > 0 {
		if options.FontFamily == "" {
			return nil, errors.New("canvas: font data given without a family name")
		}
		family := canvas.NewFontFamily(options.FontFamily)
		if err := family.LoadFont(options.FontData, 0, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("failed to load font %s: %w", options.FontFamily, err)
		}
		r.custom = strings.ToLower(options.FontFamily)
		r.families[r.custom] = family
	}
	return r, nil
}

func (r *Renderer) face(font render.Font, size float64, col color.Color) *canvas.FontFace {
	key := strings.ToLower(font.Family)
	family, ok := r.families[key]
	style := parseFontStyle(font.Style)
	if !ok || key == "" {
		family = r.families[""]
	} else if key == r.custom {
		style = canvas.FontRegular
	}
	return family.Face(size, col, style, canvas.FontNormal)
}

func parseFontStyle(style string) canvas.FontStyle {
	s := strings.ToUpper(style)
	result := canvas.FontRegular
	if strings.Contains(s, "B") {
		result = canvas.FontBold
	}
	if strings.Contains(s, "I") {
		result |= canvas.FontItalic
	}
	return result
}

// NewPage creates a canvas of the effective page size, so drawing needs no
// rotation.
func (r *Renderer) NewPage(mediaBox render.Size, rotation int) (*render.Page, error) {
	if r.closed {
		return nil, errors.New("canvas: document closed")
	}
	return r.addPage(mediaBox, rotation), nil
}

func (r *Renderer) addPage(mediaBox render.Size, rotation int) *render.Page {
	page := &render.Page{Number: len(r.pages) + 1, MediaBox: mediaBox, Rotation: rotation}
	w, h := page.EffectiveWidth()*PtToMm, page.EffectiveHeight()*PtToMm
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianI)
	r.pages = append(r.pages, &pageCanvas{page: page, w: w, h: h, c: c, ctx: ctx})
	return page
}

func (r *Renderer) OpenStream(page *render.Page) (render.Stream, error) {
	if page == nil || page.Number < 1 || page.Number > len(r.pages) {
		return nil, errors.New("canvas: unknown page")
	}
	return &stream{r: r, pc: r.pages[page.Number-1]}, nil
}

func (r *Renderer) Metrics(font render.Font) (render.FontMetrics, error) {
	face := r.face(font, metricsSize, canvas.Black)
	return &metrics{face: face}, nil
}

// Save renders every page into a PDF written to w.
func (r *Renderer) Save(w io.Writer) error {
	if r.closed {
		return errors.New("canvas: document closed")
	}
	r.closed = true
	if len(r.pages) == 0 {
		r.addPage(render.Size{Width: 612, Height: 792}, 0)
	}

	first := r.pages[0]
	writer := pdf.New(w, first.w, first.h, nil)
	writer.SetInfo(r.info.Title, r.info.Subject, r.info.Keywords, r.info.Author, r.info.Creator)
	for i, pc := range r.pages {
		if i > 0 {
			writer.NewPage(pc.w, pc.h)
		}
		pc.c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	r.logger.Debug("canvas document written", observability.Int("pages", len(r.pages)))
	return nil
}

// Close discards the document.
func (r *Renderer) Close() error {
	r.closed = true
	return nil
}

type stream struct {
	r      *Renderer
	pc     *pageCanvas
	closed bool
}

func rgba(c render.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

func (s *stream) FillRect(x, y, w, h float64, c render.Color) error {
	if s.closed {
		return errors.New("canvas: draw on closed stream")
	}
	ctx := s.pc.ctx
	ctx.SetFillColor(rgba(c))
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeWidth(0)
	ctx.DrawPath(x*PtToMm, y*PtToMm, canvas.Rectangle(w*PtToMm, h*PtToMm))
	return nil
}

func (s *stream) DrawText(x, y float64, font render.Font, size float64, c render.Color, text string) error {
	if s.closed {
		return errors.New("canvas: draw on closed stream")
	}
	face := s.r.face(font, size, rgba(c))
	s.pc.ctx.DrawText(x*PtToMm, y*PtToMm, canvas.NewTextLine(face, text, canvas.Left))
	return nil
}

func (s *stream) Close() error {
	if s.closed {
		return errors.New("canvas: stream closed twice")
	}
	s.closed = true
	return nil
}

type metrics struct {
	face *canvas.FontFace
}

// StringWidth measures at 1000pt, where the width in points is the advance
// in thousandths of an em.
func (m *metrics) StringWidth(text string) float64 {
	return m.face.TextWidth(text) * MmToPt
}

// BoundingBoxHeight approximates the bounding box by the line height of the
// face, ascent plus descent plus line gap.
func (m *metrics) BoundingBoxHeight() float64 {
	return m.face.Metrics().LineHeight * MmToPt
}
