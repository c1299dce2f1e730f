// Package markdown imports Markdown documents as line printing programs.
package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/momogentoo/pdfprintln/internal/layout"
	"github.com/momogentoo/pdfprintln/internal/observability"
	"github.com/momogentoo/pdfprintln/internal/render"
	"github.com/momogentoo/pdfprintln/internal/script"
)

// Heading sizes relative to the body size, h1 first.
var headingScale = [...]float64{2, 1.5, 1.17, 1, 0.83, 0.75}

// Options controls the conversion.
type Options struct {
	// FontSize is the body font size in points.
	FontSize float64
	Logger   observability.Logger
}

// Convert compiles Markdown source into a program. Paragraphs, headings
// and list items become single cell rows that wrap; GFM tables become
// rows with equal weights and a shaded header; code blocks keep their
// lines on a gray background.
func Convert(source []byte, options Options) (*script.Program, error) {
	if options.FontSize <= 0 {
		return nil, fmt.Errorf("markdown: font size must be positive, got %v", options.FontSize)
	}
	logger := options.Logger
	if logger == nil {
		logger = observability.NopLogger{}
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))
	doc := md.Parser().Parse(text.NewReader(source))

	w := &walker{source: source, size: options.FontSize}
	w.blocks(doc, 0)
	logger.Debug("markdown compiled", observability.Int("ops", len(w.prog.Ops)))
	return &w.prog, nil
}

type walker struct {
	source []byte
	size   float64
	prog   script.Program
}

func (w *walker) blocks(parent ast.Node, depth int) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n, depth)
	}
}

func (w *walker) block(n ast.Node, depth int) {
	switch n := n.(type) {
	case *ast.Heading:
		level := min(max(n.Level, 1), len(headingScale))
		w.cell(w.inline(n), layout.TextAttributes{FontSize: w.size * headingScale[level-1]})
	case *ast.Paragraph, *ast.TextBlock:
		w.cell(w.inline(n), layout.TextAttributes{FontSize: w.size})
	case *ast.ThematicBreak:
		w.prog.Add(script.Blank{})
	case *ast.Blockquote:
		start := len(w.prog.Ops)
		w.blocks(n, depth)
		for i := start; i < len(w.prog.Ops); i++ {
			if row, ok := w.prog.Ops[i].(script.Row); ok {
				for j := range row.Cells {
					row.Cells[j].Attrs.Foreground = render.DarkGray
					row.Cells[j].Text = "| " + row.Cells[j].Text
				}
			}
		}
	case *ast.List:
		w.list(n, depth)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.code(n)
	case *east.Table:
		w.table(n)
	case *ast.HTMLBlock:
		// raw HTML is skipped
	default:
		if n.HasChildren() {
			w.blocks(n, depth)
		}
	}
}

func (w *walker) cell(s string, attrs layout.TextAttributes) {
	if strings.TrimSpace(s) == "" {
		return
	}
	w.prog.Add(script.Row{Cells: []script.Cell{{Text: s, Weight: 1, Attrs: attrs}}})
}

func (w *walker) list(l *ast.List, depth int) {
	index := l.Start
	if index == 0 {
		index = 1
	}
	indent := strings.Repeat("    ", depth)
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "•"
		if l.IsOrdered() {
			marker = strconv.Itoa(index) + string(l.Marker)
			index++
		}

		var parts []string
		var nested []ast.Node
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if _, ok := child.(*ast.List); ok {
				nested = append(nested, child)
				continue
			}
			parts = append(parts, w.inline(child))
		}
		w.cell(indent+marker+" "+strings.Join(parts, " "), layout.TextAttributes{FontSize: w.size})
		for _, sub := range nested {
			w.list(sub.(*ast.List), depth+1)
		}
	}
}

func (w *walker) code(n ast.Node) {
	bg := render.LightGray
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(w.source)), "\r\n")
		w.prog.Add(script.Line{
			Text:       strings.ReplaceAll(line, "\t", "    "),
			Foreground: render.Black,
			Background: &bg,
			Size:       w.size,
		})
	}
}

func (w *walker) table(t *east.Table) {
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		_, header := r.(*east.TableHeader)
		var cells []script.Cell
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			tc, ok := c.(*east.TableCell)
			if !ok {
				continue
			}
			attrs := layout.TextAttributes{FontSize: w.size, Align: alignment(tc.Alignment)}
			if header {
				attrs = attrs.WithBackground(render.LightGray)
			}
			cells = append(cells, script.Cell{Text: w.inline(tc), Weight: 1, Attrs: attrs})
		}
		if len(cells) > 0 {
			w.prog.Add(script.Row{Cells: cells})
		}
	}
}

func alignment(a east.Alignment) layout.Alignment {
	switch a {
	case east.AlignCenter:
		return layout.AlignMiddle
	case east.AlignRight:
		return layout.AlignRight
	default:
		return layout.AlignLeft
	}
}

// inline flattens the inline content of n to plain text.
func (w *walker) inline(n ast.Node) string {
	var b strings.Builder
	w.writeInline(&b, n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func (w *walker) writeInline(b *strings.Builder, n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(w.source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.AutoLink:
			b.Write(c.Label(w.source))
		case *ast.RawHTML:
		default:
			w.writeInline(b, c)
		}
	}
}
