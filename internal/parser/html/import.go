package html

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/momogentoo/pdfprintln/internal/observability"
	"github.com/momogentoo/pdfprintln/internal/parser/css"
	"github.com/momogentoo/pdfprintln/internal/script"
	"github.com/momogentoo/pdfprintln/internal/style"
)

// Options controls how a document is turned into a program.
type Options struct {
	// FontSize is the root font size in points; em sizes resolve against it.
	FontSize float64
	Logger   observability.Logger
}

var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "br": true,
	"cite": true, "code": true, "data": true, "dfn": true, "em": true,
	"font": true, "i": true, "img": true, "kbd": true, "label": true,
	"mark": true, "q": true, "s": true, "samp": true, "small": true,
	"span": true, "strike": true, "strong": true, "sub": true, "sup": true,
	"time": true, "tt": true, "u": true, "var": true, "wbr": true,
}

// Convert parses HTML and compiles it into a program.
func Convert(r io.Reader, options Options) (*script.Program, error) {
	doc, err := NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return Compile(doc, options)
}

// Compile turns a parsed document into a program. Every run of inline
// content becomes a single cell row so that long text wraps; tables become
// weighted rows and list items get a bullet or number.
func Compile(doc *Document, options Options) (*script.Program, error) {
	if options.FontSize <= 0 {
		return nil, fmt.Errorf("html: font size must be positive, got %v", options.FontSize)
	}
	logger := options.Logger
	if logger == nil {
		logger = observability.NopLogger{}
	}

	c := &compiler{
		styles: style.NewStyleEngine(options.FontSize),
		base:   options.FontSize,
		logger: logger,
	}
	parser := css.NewParser()
	for _, text := range doc.Stylesheets() {
		sheet, err := parser.ParseString(text)
		if err != nil {
			logger.Warn("failed to parse stylesheet", observability.Error("error", err))
			continue
		}
		c.styles.AddStylesheet(sheet)
	}

	for n := doc.Root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			c.block(n, nil)
		}
	}
	logger.Debug("html compiled", observability.Int("ops", len(c.prog.Ops)))
	return &c.prog, nil
}

type compiler struct {
	styles *style.StyleEngine
	base   float64
	logger observability.Logger
	prog   script.Program
}

func (c *compiler) block(n *Node, parent style.ComputedStyle) {
	cs := c.styles.Compute(n, parent)
	if cs.Hidden() {
		return
	}
	if cs.PageBreakBefore() {
		c.prog.Add(script.NewPage{})
	}

	switch n.Data {
	case "hr":
		c.prog.Add(script.Blank{})
		return
	case "table":
		c.table(n, cs)
		return
	case "ul", "ol":
		c.list(n, cs, 0)
		return
	case "pre":
		c.pre(n, cs)
		return
	}

	var run strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if isInline(child) {
			inlineText(child, &run)
			continue
		}
		if child.Type != html.ElementNode {
			continue
		}
		c.paragraph(run.String(), cs)
		run.Reset()
		c.block(child, cs)
	}
	c.paragraph(run.String(), cs)
}

func isInline(n *Node) bool {
	switch n.Type {
	case html.TextNode:
		return true
	case html.ElementNode:
		return inlineTags[n.Data]
	default:
		return false
	}
}

// lineBreak marks a <br> in collected text. It is white space, so it
// collapses like any other space where breaks are not honored.
const lineBreak = "\u2028"

// inlineText appends the text of n, with lineBreak for every <br>.
func inlineText(n *Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "br":
			b.WriteString(lineBreak)
			return
		case "img":
			if alt, ok := n.Attribute("alt"); ok {
				b.WriteString(alt)
			}
			return
		case "script", "style", "template":
			return
		}
	default:
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		inlineText(child, b)
	}
	if n.Type == html.ElementNode && !inlineTags[n.Data] {
		b.WriteByte(' ')
	}
}

// paragraph emits one wrapping row per segment between <br>s. Whitespace
// only content emits nothing; an empty segment between two breaks is a
// blank line.
func (c *compiler) paragraph(text string, cs style.ComputedStyle) {
	if strings.TrimSpace(text) == "" {
		return
	}
	segments := strings.Split(text, lineBreak)
	for i, seg := range segments {
		seg = collapseSpace(seg)
		if seg == "" {
			if i > 0 && i < len(segments)-1 {
				c.prog.Add(script.Blank{})
			}
			continue
		}
		c.prog.Add(script.Row{Cells: []script.Cell{{
			Text:   seg,
			Weight: 1,
			Attrs:  cs.TextAttributes(c.base),
		}}})
	}
}

func (c *compiler) pre(n *Node, cs style.ComputedStyle) {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		inlineText(child, &b)
	}
	text := strings.ReplaceAll(b.String(), lineBreak, "\n")
	text = strings.TrimSuffix(strings.TrimPrefix(text, "\n"), "\n")
	attrs := cs.TextAttributes(c.base)
	for _, line := range strings.Split(text, "\n") {
		c.prog.Add(script.Line{
			Text:       strings.ReplaceAll(strings.TrimRight(line, " \t\r"), "\t", "    "),
			Align:      attrs.Align,
			Foreground: attrs.Foreground,
			Background: attrs.Background,
			Size:       attrs.FontSize,
		})
	}
}

func (c *compiler) list(n *Node, cs style.ComputedStyle, depth int) {
	ordered := n.Data == "ol"
	index := 1
	if start, ok := n.Attribute("start"); ok {
		if v, err := strconv.Atoi(start); err == nil {
			index = v
		}
	}
	indent := strings.Repeat("    ", depth)

	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		liStyle := c.styles.Compute(li, cs)
		if liStyle.Hidden() {
			continue
		}

		var b strings.Builder
		var nested []*Node
		for child := li.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode && (child.Data == "ul" || child.Data == "ol") {
				nested = append(nested, child)
				continue
			}
			inlineText(child, &b)
		}

		marker := "•"
		if ordered {
			marker = strconv.Itoa(index) + "."
		}
		index++
		c.prog.Add(script.Row{Cells: []script.Cell{{
			Text:   indent + marker + " " + collapseSpace(b.String()),
			Weight: 1,
			Attrs:  liStyle.TextAttributes(c.base),
		}}})
		for _, sub := range nested {
			c.list(sub, liStyle, depth+1)
		}
	}
}

func (c *compiler) table(n *Node, cs style.ComputedStyle) {
	var rows func(parent *Node, ps style.ComputedStyle)
	rows = func(parent *Node, ps style.ComputedStyle) {
		for child := parent.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.ElementNode {
				continue
			}
			switch child.Data {
			case "caption":
				c.block(child, ps)
			case "thead", "tbody", "tfoot":
				rows(child, c.styles.Compute(child, ps))
			case "tr":
				c.row(child, c.styles.Compute(child, ps))
			}
		}
	}
	rows(n, cs)
}

func (c *compiler) row(tr *Node, cs style.ComputedStyle) {
	if cs.Hidden() {
		return
	}
	var (
		cells   []script.Cell
		widths  []float64
		sum     float64
		given   int
		missing int
	)
	for td := tr.FirstChild; td != nil; td = td.NextSibling {
		if td.Type != html.ElementNode || (td.Data != "td" && td.Data != "th") {
			continue
		}
		tdStyle := c.styles.Compute(td, cs)
		var b strings.Builder
		for child := td.FirstChild; child != nil; child = child.NextSibling {
			inlineText(child, &b)
		}
		cells = append(cells, script.Cell{
			Text:  collapseSpace(b.String()),
			Attrs: tdStyle.TextAttributes(c.base),
		})

		w := cellWidth(td, tdStyle)
		if w > 0 {
			sum += w
			given++
		} else {
			missing++
		}
		widths = append(widths, w)
	}
	if len(cells) == 0 {
		return
	}

	// Cells without a width share the mean of the given ones.
	fill := 1.0
	if given > 0 {
		fill = sum / float64(given)
	}
	for i := range cells {
		if widths[i] > 0 {
			cells[i].Weight = widths[i]
		} else {
			cells[i].Weight = fill
		}
	}
	if missing > 0 && given > 0 {
		c.logger.Debug("table cells without width", observability.Int("cells", missing))
	}
	c.prog.Add(script.Row{Cells: cells})
}

// cellWidth reads the width attribute or style of a cell, ignoring units.
func cellWidth(td *Node, cs style.ComputedStyle) float64 {
	v, ok := cs.Value("width")
	if !ok {
		v, ok = td.Attribute("width")
	}
	if !ok {
		return 0
	}
	v = strings.TrimSpace(v)
	v = strings.TrimRight(v, "%ptxmcin")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
