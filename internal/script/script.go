// Package script is the executable form of a document: a list of layout
// operations replayed against a Printer. The script, HTML and Markdown
// front ends all compile to a Program.
package script

import (
	"fmt"

	"github.com/momogentoo/pdfprintln/internal/layout"
	"github.com/momogentoo/pdfprintln/internal/pagination"
	"github.com/momogentoo/pdfprintln/internal/render"
)

// Printer is the document session a Program drives.
type Printer interface {
	TextFontSize() float64
	SetTextFontSize(size float64) error
	SetFont(family, style string) error
	SetPageMargin(margin float64) error
	SetLineSpacing(spacing float64) error
	SetPageSize(size pagination.PageSize) error
	SetPageOrientation(o pagination.Orientation)
	SetOutputPageNumber(on bool)
	SetPageNumberPattern(pattern string)
	SetPageNumberFontSize(size float64) error

	Println() error
	PrintlnStyled(text string, fg render.Color, bg *render.Color, align layout.Alignment) error
	PrintRow(cells []string, weights []float64, attrs []layout.TextAttributes) error
	Print(x, y float64, text string, attrs layout.TextAttributes) error
	ForceNewPage() error

	EffectivePageWidth() float64
	EffectivePageHeight() float64
	EstimateStringWidth(text string, size float64) float64
}

// Op is one operation of a Program.
type Op interface {
	Apply(p Printer) error
}

// Program is an ordered list of operations.
type Program struct {
	Ops []Op
}

// Add appends ops to the program.
func (p *Program) Add(ops ...Op) {
	p.Ops = append(p.Ops, ops...)
}

// Run applies every operation in order and stops at the first error.
func (p *Program) Run(pr Printer) error {
	for i, op := range p.Ops {
		if err := op.Apply(pr); err != nil {
			return fmt.Errorf("operation %d (%T): %w", i+1, op, err)
		}
	}
	return nil
}

// SetFontSize changes the session font size.
type SetFontSize struct {
	Size float64
}

func (o SetFontSize) Apply(p Printer) error { return p.SetTextFontSize(o.Size) }

// SetFont changes the session font.
type SetFont struct {
	Family string
	Style  string
}

func (o SetFont) Apply(p Printer) error { return p.SetFont(o.Family, o.Style) }

// SetMargin changes the page margin.
type SetMargin struct {
	Margin float64
}

func (o SetMargin) Apply(p Printer) error { return p.SetPageMargin(o.Margin) }

// SetSpacing changes the line spacing.
type SetSpacing struct {
	Spacing float64
}

func (o SetSpacing) Apply(p Printer) error { return p.SetLineSpacing(o.Spacing) }

// SetPage changes the size and orientation of pages created from now on.
// A nil field is left unchanged.
type SetPage struct {
	Size        *pagination.PageSize
	Orientation *pagination.Orientation
}

func (o SetPage) Apply(p Printer) error {
	if o.Size != nil {
		if err := p.SetPageSize(*o.Size); err != nil {
			return err
		}
	}
	if o.Orientation != nil {
		p.SetPageOrientation(*o.Orientation)
	}
	return nil
}

// Numbering configures page number footers. Empty Pattern and zero Size
// keep the current values.
type Numbering struct {
	On      bool
	Pattern string
	Size    float64
}

func (o Numbering) Apply(p Printer) error {
	p.SetOutputPageNumber(o.On)
	if o.Pattern != "" {
		p.SetPageNumberPattern(o.Pattern)
	}
	if o.Size > 0 {
		return p.SetPageNumberFontSize(o.Size)
	}
	return nil
}

// Line prints one line of text. A positive Size applies to this line only.
type Line struct {
	Text       string
	Align      layout.Alignment
	Foreground render.Color
	Background *render.Color
	Size       float64
}

func (o Line) Apply(p Printer) error {
	prev := p.TextFontSize()
	if o.Size <= 0 || o.Size == prev {
		return p.PrintlnStyled(o.Text, o.Foreground, o.Background, o.Align)
	}
	if err := p.SetTextFontSize(o.Size); err != nil {
		return err
	}
	if err := p.PrintlnStyled(o.Text, o.Foreground, o.Background, o.Align); err != nil {
		return err
	}
	return p.SetTextFontSize(prev)
}

// Blank prints an empty line.
type Blank struct{}

func (Blank) Apply(p Printer) error { return p.Println() }

// Cell is one column of a Row.
type Cell struct {
	Text   string
	Weight float64
	Attrs  layout.TextAttributes
}

// Row prints cells side by side.
type Row struct {
	Cells []Cell
}

func (o Row) Apply(p Printer) error {
	cells := make([]string, len(o.Cells))
	weights := make([]float64, len(o.Cells))
	attrs := make([]layout.TextAttributes, len(o.Cells))
	for i, c := range o.Cells {
		cells[i] = c.Text
		weights[i] = c.Weight
		attrs[i] = c.Attrs
	}
	return p.PrintRow(cells, weights, attrs)
}

// NewPage forces a page break.
type NewPage struct{}

func (NewPage) Apply(p Printer) error { return p.ForceNewPage() }

// Anchor positions absolute text relative to the page instead of at a
// fixed coordinate.
type Anchor int

const (
	AnchorNone Anchor = iota
	// AnchorCenter centers the text horizontally or places it at half the
	// page height.
	AnchorCenter
)

// Text draws at an absolute position without moving the line cursor.
type Text struct {
	X, Y    float64
	XAnchor Anchor
	YAnchor Anchor
	Text    string
	Attrs   layout.TextAttributes
}

func (o Text) Apply(p Printer) error {
	x, y := o.X, o.Y
	if o.XAnchor == AnchorCenter {
		size := o.Attrs.FontSize
		if size <= 0 {
			size = p.TextFontSize()
		}
		x = (p.EffectivePageWidth() - p.EstimateStringWidth(o.Text, size)) / 2
	}
	if o.YAnchor == AnchorCenter {
		y = p.EffectivePageHeight() / 2
	}
	return p.Print(x, y, o.Text, o.Attrs)
}

// Repeat runs Body Count times.
type Repeat struct {
	Count int
	Body  Program
}

func (o Repeat) Apply(p Printer) error {
	for i := 0; i < o.Count; i++ {
		if err := o.Body.Run(p); err != nil {
			return fmt.Errorf("iteration %d: %w", i+1, err)
		}
	}
	return nil
}
