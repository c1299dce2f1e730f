package dsl

import (
	"fmt"
	"io"
	"strings"

	"github.com/momogentoo/pdfprintln/internal/layout"
	"github.com/momogentoo/pdfprintln/internal/pagination"
	"github.com/momogentoo/pdfprintln/internal/render"
	"github.com/momogentoo/pdfprintln/internal/script"
)

// Parse reads a script and compiles it into a program.
func Parse(name string, r io.Reader) (*script.Program, error) {
	ast, err := ParseAST(name, r)
	if err != nil {
		return nil, err
	}
	return Compile(ast)
}

// ParseString compiles a script held in a string.
func ParseString(input string) (*script.Program, error) {
	ast, err := ParseASTString("", input)
	if err != nil {
		return nil, err
	}
	return Compile(ast)
}

// Compile turns a syntax tree into a program, resolving colors, page sizes
// and alignments.
func Compile(s *Script) (*script.Program, error) {
	prog, err := compileStatements(s.Statements)
	if err != nil {
		return nil, err
	}
	return &prog, nil
}

func compileStatements(stmts []*Statement) (script.Program, error) {
	var prog script.Program
	for _, st := range stmts {
		op, err := compileStatement(st)
		if err != nil {
			return script.Program{}, fmt.Errorf("%s: %s: %w", st.Pos, st.Kind(), err)
		}
		prog.Add(op)
	}
	return prog, nil
}

func compileStatement(st *Statement) (script.Op, error) {
	switch {
	case st.Size != nil:
		return script.SetFontSize{Size: *st.Size}, nil
	case st.Font != nil:
		return script.SetFont{Family: st.Font.Family, Style: st.Font.Style}, nil
	case st.Margin != nil:
		return script.SetMargin{Margin: *st.Margin}, nil
	case st.Spacing != nil:
		return script.SetSpacing{Spacing: *st.Spacing}, nil
	case st.Page != nil:
		return compilePage(st.Page)
	case st.Numbering != nil:
		o, err := compileOptions(st.Numbering.Options, optPattern|optSize)
		if err != nil {
			return nil, err
		}
		return script.Numbering{On: st.Numbering.State == "on", Pattern: o.pattern, Size: o.size}, nil
	case st.Println != nil:
		o, err := compileOptions(st.Println.Options, optSize|optColor|optBackground|optAlign)
		if err != nil {
			return nil, err
		}
		if st.Println.Align != "" {
			if o.align, err = layout.ParseAlignment(st.Println.Align); err != nil {
				return nil, err
			}
		}
		return script.Line{
			Text:       string(st.Println.Text),
			Align:      o.align,
			Foreground: o.fg,
			Background: o.bg,
			Size:       o.size,
		}, nil
	case st.Blank:
		return script.Blank{}, nil
	case st.Row != nil:
		return compileRow(st.Row)
	case st.NewPage:
		return script.NewPage{}, nil
	case st.Text != nil:
		return compileText(st.Text)
	case st.Repeat != nil:
		if st.Repeat.Count < 0 {
			return nil, fmt.Errorf("negative count %d", st.Repeat.Count)
		}
		body, err := compileStatements(st.Repeat.Body)
		if err != nil {
			return nil, err
		}
		return script.Repeat{Count: st.Repeat.Count, Body: body}, nil
	default:
		return nil, fmt.Errorf("empty statement")
	}
}

func compilePage(p *PageStmt) (script.Op, error) {
	var op script.SetPage
	for _, param := range p.Params {
		if o, err := pagination.ParseOrientation(param); err == nil {
			if op.Orientation != nil {
				return nil, fmt.Errorf("orientation given twice")
			}
			op.Orientation = &o
			continue
		}
		size, err := pagination.ParsePageSize(param)
		if err != nil {
			return nil, err
		}
		if op.Size != nil {
			return nil, fmt.Errorf("page size given twice")
		}
		op.Size = &size
	}
	return op, nil
}

func compileRow(r *RowStmt) (script.Op, error) {
	if len(r.Cells) == 0 {
		return nil, layout.ErrEmptyRow
	}
	row := script.Row{Cells: make([]script.Cell, len(r.Cells))}
	for i, c := range r.Cells {
		o, err := compileOptions(c.Options, optSize|optColor|optBackground|optAlign)
		if err != nil {
			return nil, fmt.Errorf("%s: cell %d: %w", c.Pos, i+1, err)
		}
		row.Cells[i] = script.Cell{
			Text:   string(c.Text),
			Weight: c.Weight,
			Attrs: layout.TextAttributes{
				FontSize:   o.size,
				Foreground: o.fg,
				Background: o.bg,
				Align:      o.align,
			},
		}
	}
	return row, nil
}

func compileText(t *TextStmt) (script.Op, error) {
	o, err := compileOptions(t.Options, optSize|optColor)
	if err != nil {
		return nil, err
	}
	op := script.Text{
		Text:  string(t.Text),
		Attrs: layout.TextAttributes{FontSize: o.size, Foreground: o.fg},
	}
	op.X, op.XAnchor = t.X.resolve()
	op.Y, op.YAnchor = t.Y.resolve()
	return op, nil
}

func (c Coord) resolve() (float64, script.Anchor) {
	if c.Value != nil {
		return *c.Value, script.AnchorNone
	}
	return 0, script.AnchorCenter
}

type optionSet uint8

const (
	optSize optionSet = 1 << iota
	optColor
	optBackground
	optAlign
	optPattern
)

type options struct {
	size    float64
	fg      render.Color
	bg      *render.Color
	align   layout.Alignment
	pattern string
}

func compileOptions(opts []*Option, allowed optionSet) (options, error) {
	out := options{fg: render.Black}
	for _, opt := range opts {
		kind, name := opt.kind()
		if allowed&kind == 0 {
			return options{}, fmt.Errorf("%s: option %q not allowed here", opt.Pos, name)
		}
		var err error
		switch kind {
		case optSize:
			if *opt.Size <= 0 {
				return options{}, fmt.Errorf("%s: %w", opt.Pos, layout.ErrInvalidFontSize)
			}
			out.size = *opt.Size
		case optColor:
			out.fg, err = render.ParseColor(*opt.Color)
		case optBackground:
			var c render.Color
			if c, err = render.ParseColor(*opt.Background); err == nil {
				out.bg = &c
			}
		case optAlign:
			out.align, err = layout.ParseAlignment(*opt.Align)
		case optPattern:
			out.pattern = string(*opt.Pattern)
			if !strings.Contains(out.pattern, "%") {
				err = fmt.Errorf("pattern %q has no page number verb", out.pattern)
			}
		}
		if err != nil {
			return options{}, fmt.Errorf("%s: %w", opt.Pos, err)
		}
	}
	return out, nil
}

func (o *Option) kind() (optionSet, string) {
	switch {
	case o.Size != nil:
		return optSize, "size"
	case o.Color != nil:
		return optColor, "color"
	case o.Background != nil:
		return optBackground, "background"
	case o.Align != nil:
		return optAlign, "align"
	default:
		return optPattern, "pattern"
	}
}
