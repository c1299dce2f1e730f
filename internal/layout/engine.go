// Package layout places lines of text on pages. It tracks the vertical
// cursor of the current page, decides when a new page is needed and lays
// out weighted rows of wrapped cells.
package layout

import (
	"fmt"
	"strings"

	"github.com/momogentoo/pdfprintln/internal/observability"
	"github.com/momogentoo/pdfprintln/internal/pagination"
	"github.com/momogentoo/pdfprintln/internal/render"
	"github.com/momogentoo/pdfprintln/internal/text"
)

// Options represents options for the layout engine
type Options struct {
	PageSize    pagination.PageSize
	Orientation pagination.Orientation

	Font     render.Font
	FontSize float64

	// Margin applies to all four page edges.
	Margin      float64
	LineSpacing float64

	PageNumbers        bool
	PageNumberPattern  string
	PageNumberFontSize float64
}

// DefaultOptions returns letter landscape pages with 12pt Helvetica Bold,
// a 40pt margin, 5pt line spacing and numbered pages.
func DefaultOptions() Options {
	return Options{
		PageSize:           pagination.PageSizeLetter,
		Orientation:        pagination.Landscape,
		Font:               render.Font{Family: "Helvetica", Style: "B"},
		FontSize:           12,
		Margin:             40,
		LineSpacing:        5,
		PageNumbers:        true,
		PageNumberPattern:  "Page Number %d",
		PageNumberFontSize: 6,
	}
}

// Engine handles the layout process
type Engine struct {
	options   Options
	backend   render.Backend
	paginator *pagination.Paginator
	logger    observability.Logger

	shaper     *text.TextShaper
	lineHeight float64
	state      State
	closed     bool
}

// NewEngine creates a layout engine drawing on backend.
func NewEngine(backend render.Backend, options Options, logger observability.Logger) (*Engine, error) {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	if options.FontSize <= 0 || options.PageNumberFontSize <= 0 {
		return nil, ErrInvalidFontSize
	}
	if options.Margin < 0 || options.LineSpacing < 0 {
		return nil, ErrInvalidSpacing
	}
	if !options.PageSize.Valid() {
		return nil, fmt.Errorf("layout: invalid page size %v", options.PageSize)
	}

	e := &Engine{
		options:   options,
		backend:   backend,
		paginator: pagination.NewPaginator(backend, logger),
		logger:    logger,
	}
	if err := e.loadFont(options.Font); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) loadFont(font render.Font) error {
	metrics, err := e.backend.Metrics(font)
	if err != nil {
		return fmt.Errorf("failed to load metrics for font %s: %w", font, err)
	}
	e.shaper = text.NewTextShaper(metrics)
	e.lineHeight = e.shaper.LineHeight(e.options.FontSize)
	return nil
}

// Options returns the current settings.
func (e *Engine) Options() Options {
	return e.options
}

// State returns a copy of the cursor state.
func (e *Engine) State() State {
	return e.state
}

// LineHeight is the height of a line at the session font size.
func (e *Engine) LineHeight() float64 {
	return e.lineHeight
}

// MeasureText returns the width of text in the session font at size.
func (e *Engine) MeasureText(s string, size float64) float64 {
	return e.shaper.MeasureText(s, size)
}

// EstimateMaxLines is EstimateMaxLines with the session line spacing.
func (e *Engine) EstimateMaxLines(maxHeight, lineHeight, marginTop, marginBottom float64) int {
	return EstimateMaxLines(maxHeight, lineHeight, e.options.LineSpacing, marginTop, marginBottom)
}

// SetFontSize changes the session font size. On a page that already has
// lines the remaining budget is recomputed from the last baseline, so lines
// already drawn stay where they are.
func (e *Engine) SetFontSize(size float64) error {
	if size <= 0 {
		return ErrInvalidFontSize
	}
	e.options.FontSize = size
	e.lineHeight = e.shaper.LineHeight(size)
	e.rebudget()
	return nil
}

// SetFont switches the session font, reloading its metrics.
func (e *Engine) SetFont(font render.Font) error {
	prev := e.options.Font
	e.options.Font = font
	if err := e.loadFont(font); err != nil {
		e.options.Font = prev
		return err
	}
	e.rebudget()
	return nil
}

func (e *Engine) rebudget() {
	s := &e.state
	if s.Page == nil {
		return
	}
	if s.Baseline.Set {
		s.AvailableLines = e.EstimateMaxLines(s.Baseline.Y-e.options.LineSpacing-e.options.Margin, e.lineHeight, 0, 0)
	} else {
		s.MaxLines = e.EstimateMaxLines(s.EffectiveHeight, e.lineHeight, e.options.Margin, e.options.Margin)
		s.AvailableLines = s.MaxLines - s.LinesConsumed
	}
	e.logger.Debug("line budget recalculated",
		observability.Int("available", s.AvailableLines),
		observability.Float64("lineHeight", e.lineHeight),
		observability.Float64("baseline", s.Baseline.Y),
	)
}

// SetMargin sets the margin used from the next line on.
func (e *Engine) SetMargin(margin float64) error {
	if margin < 0 {
		return ErrInvalidSpacing
	}
	e.options.Margin = margin
	return nil
}

// SetLineSpacing sets the gap between committed lines.
func (e *Engine) SetLineSpacing(spacing float64) error {
	if spacing < 0 {
		return ErrInvalidSpacing
	}
	e.options.LineSpacing = spacing
	return nil
}

// SetPageSize sets the size of pages created from now on.
func (e *Engine) SetPageSize(size pagination.PageSize) error {
	if !size.Valid() {
		return fmt.Errorf("layout: invalid page size %v", size)
	}
	e.options.PageSize = size
	return nil
}

// SetOrientation sets the orientation of pages created from now on.
func (e *Engine) SetOrientation(o pagination.Orientation) {
	e.options.Orientation = o
}

// SetPageNumbers turns page number footers on or off.
func (e *Engine) SetPageNumbers(on bool) {
	e.options.PageNumbers = on
}

// SetPageNumberPattern sets the fmt pattern of the footer; it receives the
// page number as its only argument.
func (e *Engine) SetPageNumberPattern(pattern string) {
	e.options.PageNumberPattern = pattern
}

// SetPageNumberFontSize sets the footer font size.
func (e *Engine) SetPageNumberFontSize(size float64) error {
	if size <= 0 {
		return ErrInvalidFontSize
	}
	e.options.PageNumberFontSize = size
	return nil
}

// PageNumber is the number of the current page.
func (e *Engine) PageNumber() int {
	return e.paginator.Number()
}

// SetPageNumber sets the current page number; the next page gets n+1.
func (e *Engine) SetPageNumber(n int) {
	e.paginator.SetNumber(n)
}

// NextLineY returns the baseline of the next line. The first line of a page
// is placed from the top margin; later lines step down from the previous
// baseline.
func (e *Engine) NextLineY() float64 {
	s := &e.state
	step := e.lineHeight + e.options.LineSpacing
	if !s.Baseline.Set {
		return s.EffectiveHeight - e.options.Margin - float64(s.LinesConsumed)*step
	}
	return s.Baseline.Y - step
}

// EnsurePage starts a new page when force is set, when there is no page yet
// or when the current one is full. It reports whether a page was created.
func (e *Engine) EnsurePage(force bool) (bool, error) {
	if e.closed {
		return false, ErrClosed
	}
	if !force && e.state.Page != nil && !e.state.Full() {
		return false, nil
	}

	page, stream, err := e.paginator.NewPage(e.options.PageSize, e.options.Orientation)
	if err != nil {
		return false, err
	}

	effH := page.EffectiveHeight()
	maxLines := e.EstimateMaxLines(effH, e.lineHeight, e.options.Margin, e.options.Margin)
	e.state = State{
		Page:            page,
		Stream:          stream,
		EffectiveWidth:  page.EffectiveWidth(),
		EffectiveHeight: effH,
		MaxLines:        maxLines,
		AvailableLines:  maxLines,
		CursorY:         effH,
	}
	e.logger.Debug("page started",
		observability.Int("page", e.paginator.Number()),
		observability.Int("maxLines", maxLines),
		observability.Bool("forced", force),
	)

	if e.options.PageNumbers {
		if err := e.drawPageNumber(); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (e *Engine) drawPageNumber() error {
	label := pageLabel(e.options.PageNumberPattern, e.paginator.Number())
	size := e.options.PageNumberFontSize
	x := (e.state.EffectiveWidth - e.shaper.MeasureText(label, size)) / 2
	y := e.options.Margin / 2
	return e.draw(x, y, label, TextAttributes{FontSize: size})
}

// pageLabel formats the footer. A pattern without a verb is printed as is.
func pageLabel(pattern string, n int) string {
	if !strings.Contains(strings.ReplaceAll(pattern, "%%", ""), "%") {
		return strings.ReplaceAll(pattern, "%%", "%")
	}
	return fmt.Sprintf(pattern, n)
}

// Println draws text on the next line, starting a new page when needed.
func (e *Engine) Println(s string, fg render.Color, bg *render.Color, align Alignment) error {
	if _, err := e.EnsurePage(false); err != nil {
		return err
	}

	st := &e.state
	size := e.options.FontSize
	width := e.shaper.MeasureText(s, size)
	var x float64
	switch align {
	case AlignRight:
		x = st.EffectiveWidth - e.options.Margin - width
	case AlignMiddle:
		x = (st.EffectiveWidth - width) / 2
	default:
		x = e.options.Margin
	}
	y := e.NextLineY()

	attrs := TextAttributes{
		FontSize:   size,
		Foreground: fg,
		Background: bg,
		Align:      align,
	}.WithBox(render.Rect{
		X:      e.options.Margin,
		Y:      y,
		Width:  st.EffectiveWidth - 2*e.options.Margin,
		Height: e.lineHeight,
	})
	if err := e.draw(x, y, s, attrs); err != nil {
		return err
	}
	st.commit(x, y, 1)
	return nil
}

// Print draws text at an absolute position without moving the line cursor.
// The first page is started if there is none.
func (e *Engine) Print(x, y float64, s string, attrs TextAttributes) error {
	if e.closed {
		return ErrClosed
	}
	if e.state.Page == nil {
		if _, err := e.EnsurePage(false); err != nil {
			return err
		}
	}
	return e.draw(x, y, s, attrs)
}

func (e *Engine) draw(x, y float64, s string, attrs TextAttributes) error {
	stream := e.state.Stream
	if attrs.Background != nil && attrs.Box != nil {
		b := attrs.Box
		if err := stream.FillRect(b.X, b.Y, b.Width, b.Height, *attrs.Background); err != nil {
			return fmt.Errorf("failed to fill background: %w", err)
		}
	}
	if s == "" {
		return nil
	}
	if err := stream.DrawText(x, y, e.options.Font, attrs.size(e.options.FontSize), attrs.Foreground, s); err != nil {
		return fmt.Errorf("failed to draw text: %w", err)
	}
	return nil
}

// Close closes the stream of the last page.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.state.Stream = nil
	return e.paginator.Close()
}
