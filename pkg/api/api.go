// Package api is the public interface of pdfprintln: a Document prints
// lines, rows and absolutely placed text onto automatically paginated PDF
// pages.
package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/momogentoo/pdfprintln/internal/layout"
	"github.com/momogentoo/pdfprintln/internal/observability"
	"github.com/momogentoo/pdfprintln/internal/render"
	canvasrenderer "github.com/momogentoo/pdfprintln/internal/render/canvas"
	"github.com/momogentoo/pdfprintln/internal/render/pdf"
	"github.com/momogentoo/pdfprintln/internal/res"
	"github.com/momogentoo/pdfprintln/internal/script"
)

// Errors returned by Document. Row errors are matched with errors.Is.
var (
	ErrClosed          = layout.ErrClosed
	ErrInvalidFontSize = layout.ErrInvalidFontSize
	ErrEmptyRow        = layout.ErrEmptyRow
	ErrRowShape        = layout.ErrRowShape
	ErrInvalidWeights  = layout.ErrInvalidWeights
)

var _ script.Printer = (*Document)(nil)

// Document is a print session writing one PDF. It is not safe for
// concurrent use.
type Document struct {
	options Options
	loader  *res.Loader
	backend render.Backend
	engine  *layout.Engine
	logger  observability.Logger
	closed  bool
}

// New creates a document with the default options modified by opts.
func New(opts ...Option) (*Document, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return NewWithOptions(options)
}

// NewWithOptions creates a document with the specified options
func NewWithOptions(options Options) (*Document, error) {
	logger := newLogger(options)
	loader := res.NewLoader("")
	loader.SetLogger(logger)
	for _, path := range options.ResourcePaths {
		loader.AddSearchPath(path)
	}
	if options.FontFile != "" && options.FontFamily == "" {
		base := filepath.Base(options.FontFile)
		options.FontFamily = strings.TrimSuffix(base, filepath.Ext(base))
	}

	backend, err := newBackend(options, loader, logger)
	if err != nil {
		return nil, err
	}
	engine, err := layout.NewEngine(backend, layout.Options{
		PageSize:           options.PageSize,
		Orientation:        options.PageOrientation,
		Font:               render.Font{Family: options.FontFamily, Style: options.FontStyle},
		FontSize:           options.FontSize,
		Margin:             options.Margin,
		LineSpacing:        options.LineSpacing,
		PageNumbers:        options.OutputPageNumber,
		PageNumberPattern:  options.PageNumberPattern,
		PageNumberFontSize: options.PageNumberFontSize,
	}, logger)
	if err != nil {
		backend.Close()
		return nil, err
	}

	logger.Debug("document created",
		observability.String("backend", string(options.Backend)),
		observability.String("pageSize", options.PageSize.String()),
		observability.String("orientation", options.PageOrientation.String()),
		observability.String("font", options.FontFamily+"-"+options.FontStyle),
	)
	return &Document{
		options: options,
		loader:  loader,
		backend: backend,
		engine:  engine,
		logger:  logger,
	}, nil
}

func newLogger(options Options) observability.Logger {
	switch {
	case options.Logger != nil:
		return observability.NewSlogLogger(options.Logger)
	case options.Debug:
		return observability.NewTextLogger(os.Stderr, slog.LevelDebug)
	default:
		return observability.NopLogger{}
	}
}

func newBackend(options Options, loader *res.Loader, logger observability.Logger) (render.Backend, error) {
	var fontData []byte
	if options.FontFile != "" {
		r, err := loader.LoadFont(options.FontFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load font file: %w", err)
		}
		fontData = r.Data
	}
	info := render.Info{
		Title:    options.Title,
		Author:   options.Author,
		Subject:  options.Subject,
		Keywords: options.Keywords,
		Creator:  "pdfprintln",
	}

	switch options.Backend {
	case BackendFpdf, "":
		return pdf.NewRenderer(pdf.Options{
			Info:       info,
			FontFamily: options.FontFamily,
			FontStyle:  options.FontStyle,
			FontData:   fontData,
			Compress:   options.Compress,
			Debug:      options.Debug,
			Logger:     logger,
		})
	case BackendCanvas:
		return canvasrenderer.NewRenderer(canvasrenderer.Options{
			Info:       info,
			FontFamily: options.FontFamily,
			FontData:   fontData,
			Logger:     logger,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q", options.Backend)
	}
}

func (d *Document) check() error {
	if d.closed {
		return ErrClosed
	}
	return nil
}

// PageOrientation returns the orientation of pages created from now on.
func (d *Document) PageOrientation() PageOrientation {
	return d.engine.Options().Orientation
}

// SetPageOrientation sets the orientation of pages created from now on.
func (d *Document) SetPageOrientation(o PageOrientation) {
	d.engine.SetOrientation(o)
}

// TextFontSize returns the session font size.
func (d *Document) TextFontSize() float64 {
	return d.engine.Options().FontSize
}

// SetTextFontSize changes the session font size. Lines already drawn keep
// their position; the remaining line budget of the page is recomputed.
func (d *Document) SetTextFontSize(size float64) error {
	if err := d.check(); err != nil {
		return err
	}
	return d.engine.SetFontSize(size)
}

// SetFont switches the session font. style is "", "B", "I" or "BI".
func (d *Document) SetFont(family, style string) error {
	if err := d.check(); err != nil {
		return err
	}
	return d.engine.SetFont(render.Font{Family: family, Style: style})
}

// PageMargin returns the margin applied to all four page edges.
func (d *Document) PageMargin() float64 {
	return d.engine.Options().Margin
}

// SetPageMargin sets the page margin.
func (d *Document) SetPageMargin(margin float64) error {
	return d.engine.SetMargin(margin)
}

// LineSpacing returns the gap between lines.
func (d *Document) LineSpacing() float64 {
	return d.engine.Options().LineSpacing
}

// SetLineSpacing sets the gap between lines.
func (d *Document) SetLineSpacing(spacing float64) error {
	return d.engine.SetLineSpacing(spacing)
}

// PageSize returns the size of pages created from now on.
func (d *Document) PageSize() PageSize {
	return d.engine.Options().PageSize
}

// SetPageSize sets the size of pages created from now on.
func (d *Document) SetPageSize(size PageSize) error {
	return d.engine.SetPageSize(size)
}

// OutputPageNumber reports whether page numbers are printed.
func (d *Document) OutputPageNumber() bool {
	return d.engine.Options().PageNumbers
}

// SetOutputPageNumber turns page number footers on or off.
func (d *Document) SetOutputPageNumber(on bool) {
	d.engine.SetPageNumbers(on)
}

// PageNumberPattern returns the footer format.
func (d *Document) PageNumberPattern() string {
	return d.engine.Options().PageNumberPattern
}

// SetPageNumberPattern sets the footer format, eg: "Page %d".
func (d *Document) SetPageNumberPattern(pattern string) {
	d.engine.SetPageNumberPattern(pattern)
}

// PageNumberFontSize returns the footer font size.
func (d *Document) PageNumberFontSize() float64 {
	return d.engine.Options().PageNumberFontSize
}

// SetPageNumberFontSize sets the footer font size.
func (d *Document) SetPageNumberFontSize(size float64) error {
	return d.engine.SetPageNumberFontSize(size)
}

// PageNumber returns the number of the current page, 0 before the first.
func (d *Document) PageNumber() int {
	return d.engine.PageNumber()
}

// SetPageNumber sets the current page number; the next page gets n+1.
func (d *Document) SetPageNumber(n int) {
	d.engine.SetPageNumber(n)
}

// AvailableLines returns the line budget left on the current page.
func (d *Document) AvailableLines() int {
	return d.engine.State().AvailableLines
}

// EffectivePageWidth returns the width of the current page as seen by the
// layout, or of the next page when none exists yet.
func (d *Document) EffectivePageWidth() float64 {
	if st := d.engine.State(); st.Page != nil {
		return st.EffectiveWidth
	}
	w, _ := d.nextPageSize()
	return w
}

// EffectivePageHeight is the height counterpart of EffectivePageWidth.
func (d *Document) EffectivePageHeight() float64 {
	if st := d.engine.State(); st.Page != nil {
		return st.EffectiveHeight
	}
	_, h := d.nextPageSize()
	return h
}

func (d *Document) nextPageSize() (float64, float64) {
	o := d.engine.Options()
	page := render.Page{MediaBox: o.PageSize.Dimensions(), Rotation: o.Orientation.Rotation()}
	return page.EffectiveWidth(), page.EffectiveHeight()
}

// EstimateStringWidth returns the width of text in the session font at
// size points.
func (d *Document) EstimateStringWidth(text string, size float64) float64 {
	return d.engine.MeasureText(text, size)
}

// Print draws text at an absolute position without moving the line cursor.
func (d *Document) Print(x, y float64, text string, attrs TextAttributes) error {
	if err := d.check(); err != nil {
		return err
	}
	return d.engine.Print(x, y, text, attrs)
}

// Println prints an empty line.
func (d *Document) Println() error {
	return d.PrintlnStyled("", render.Black, nil, AlignLeft)
}

// PrintlnText prints a line in black without background.
func (d *Document) PrintlnText(text string, align Alignment) error {
	return d.PrintlnStyled(text, render.Black, nil, align)
}

// PrintlnStyled prints a line with a foreground color and an optional
// background spanning the width between the margins.
func (d *Document) PrintlnStyled(text string, fg Color, bg *Color, align Alignment) error {
	if err := d.check(); err != nil {
		return err
	}
	return d.engine.Println(text, fg, bg, align)
}

// PrintRow prints cells side by side. Widths are shares of the width
// between the margins in proportion to weights; attrs is nil or has one
// entry per cell.
func (d *Document) PrintRow(cells []string, weights []float64, attrs []TextAttributes) error {
	if err := d.check(); err != nil {
		return err
	}
	return d.engine.PrintRow(cells, weights, attrs)
}

// ForceNewPage starts a new page even if the current one has room.
func (d *Document) ForceNewPage() error {
	if err := d.check(); err != nil {
		return err
	}
	_, err := d.engine.EnsurePage(true)
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteTo closes the document and writes the PDF to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	if err := d.check(); err != nil {
		return 0, err
	}
	d.closed = true
	if err := d.engine.Close(); err != nil {
		d.backend.Close()
		return 0, fmt.Errorf("failed to close page: %w", err)
	}
	cw := &countingWriter{w: w}
	if err := d.backend.Save(cw); err != nil {
		d.backend.Close()
		return cw.n, fmt.Errorf("failed to write PDF: %w", err)
	}
	d.logger.Info("document written",
		observability.Int("pages", d.engine.PageNumber()),
		observability.Int("bytes", int(cw.n)),
	)
	return cw.n, d.backend.Close()
}

// SaveFile writes the PDF to an open file and closes the document.
func (d *Document) SaveFile(f *os.File) error {
	_, err := d.WriteTo(f)
	return err
}

// Save writes the PDF to path, creating its directory when needed.
func (d *Document) Save(path string) error {
	if err := d.check(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	_, werr := d.WriteTo(f)
	cerr := f.Close()
	return errors.Join(werr, cerr)
}

// Close releases the document without writing it. It is safe to call
// after Save.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return errors.Join(d.engine.Close(), d.backend.Close())
}

// run executes a compiled program against the document.
func (d *Document) run(prog *script.Program) error {
	if err := d.check(); err != nil {
		return err
	}
	return prog.Run(d)
}
