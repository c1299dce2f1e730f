package layout

import (
	"fmt"
	"math"

	"github.com/momogentoo/pdfprintln/internal/observability"
	"github.com/momogentoo/pdfprintln/internal/render"
)

// cell is one laid out column of a row.
type cell struct {
	x, width   float64
	size       float64
	lineHeight float64
	lines      []string
	attrs      TextAttributes
}

// ColumnWidths splits total between columns in proportion to weights.
func ColumnWidths(total float64, weights []float64) ([]float64, error) {
	sum, err := weightSum(weights)
	if err != nil {
		return nil, err
	}
	widths := make([]float64, len(weights))
	for i, w := range weights {
		widths[i] = total * w / sum
	}
	return widths, nil
}

func weightSum(weights []float64) (float64, error) {
	if len(weights) == 0 {
		return 0, ErrEmptyRow
	}
	var sum float64
	for _, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, fmt.Errorf("%w: weight %v is not finite", ErrInvalidWeights, w)
		}
		if w < 0 {
			return 0, fmt.Errorf("%w: negative weight %v", ErrInvalidWeights, w)
		}
		sum += w
	}
	if math.IsInf(sum, 0) {
		return 0, fmt.Errorf("%w: weights overflow", ErrInvalidWeights)
	}
	if sum <= 0 {
		return 0, fmt.Errorf("%w: weights sum to %v", ErrInvalidWeights, sum)
	}
	return sum, nil
}

// PrintRow draws cells side by side on the next line. Each cell gets a share
// of the width between the margins in proportion to its weight and its text
// is wrapped to that width. attrs may be nil; otherwise it has one entry per
// cell. Text is placed inside its cell according to the cell alignment. The
// row consumes as many lines as its tallest cell.
//
// The page break is decided before the row is laid out, so a wrapped row
// taller than the remaining budget still lands on the current page and may
// reach into the bottom margin; AvailableLines then goes negative and the
// next call starts a new page. The committed baseline is the lowest last
// line of any cell, which differs from the last line of the tallest cell
// only when cells use different font sizes.
func (e *Engine) PrintRow(cells []string, weights []float64, attrs []TextAttributes) error {
	if len(cells) == 0 {
		return ErrEmptyRow
	}
	if len(cells) != len(weights) {
		return fmt.Errorf("%w: %d cells, %d weights", ErrRowShape, len(cells), len(weights))
	}
	if attrs != nil && len(attrs) != len(cells) {
		return fmt.Errorf("%w: %d cells, %d attributes", ErrRowShape, len(cells), len(attrs))
	}
	if _, err := weightSum(weights); err != nil {
		return err
	}

	if _, err := e.EnsurePage(false); err != nil {
		return err
	}

	st := &e.state
	margin := e.options.Margin
	widths, err := ColumnWidths(st.EffectiveWidth-2*margin, weights)
	if err != nil {
		return err
	}

	y := e.NextLineY()
	bottom := y
	rowLines := 0
	laid := make([]cell, len(cells))
	x := margin
	for i, s := range cells {
		var a TextAttributes
		if attrs != nil {
			a = attrs[i]
		}
		c := cell{x: x, width: widths[i], attrs: a}
		c.size = a.size(e.options.FontSize)
		c.lineHeight = e.shaper.LineHeight(c.size)
		c.lines = e.shaper.SplitTextToLines(s, c.size, c.width)
		laid[i] = c

		if last := y - float64(len(c.lines)-1)*c.lineHeight; last < bottom {
			bottom = last
		}
		if len(c.lines) > rowLines {
			rowLines = len(c.lines)
		}
		x += widths[i]
	}

	for _, c := range laid {
		if err := e.drawCell(c, y, bottom); err != nil {
			return err
		}
	}

	last := laid[len(laid)-1]
	st.commit(last.x, bottom, rowLines)
	if rowLines > 1 {
		e.logger.Debug("row wrapped",
			observability.Int("cells", len(cells)),
			observability.Int("lines", rowLines),
			observability.Int("available", st.AvailableLines),
		)
	}
	return nil
}

func (e *Engine) drawCell(c cell, top, bottom float64) error {
	a := c.attrs
	a.FontSize = c.size
	if a.Background != nil && a.Box == nil {
		a = a.WithBox(render.Rect{
			X:      c.x,
			Y:      bottom,
			Width:  c.width,
			Height: top - bottom + c.lineHeight,
		})
	}
	for k, line := range c.lines {
		ly := top - float64(k)*c.lineHeight
		if k > 0 {
			a.Background = nil
		}
		if err := e.draw(c.lineX(e.shaper.MeasureText(line, c.size)), ly, line, a); err != nil {
			return err
		}
	}
	return nil
}

func (c cell) lineX(width float64) float64 {
	switch c.attrs.Align {
	case AlignRight:
		return c.x + c.width - width
	case AlignMiddle:
		return c.x + (c.width-width)/2
	default:
		return c.x
	}
}
