// Package style computes text attributes for imported HTML elements from
// a user agent stylesheet, document stylesheets and inline declarations.
package style

import (
	"strconv"
	"strings"

	"github.com/momogentoo/pdfprintln/internal/layout"
	"github.com/momogentoo/pdfprintln/internal/parser/css"
	"github.com/momogentoo/pdfprintln/internal/render"
)

// Element is the view of a document node the cascade needs.
type Element interface {
	Tag() string
	Attribute(name string) (string, bool)
	// ParentElement returns nil at the root.
	ParentElement() Element
}

// Specificity represents the specificity of a CSS selector
type Specificity struct {
	ID      int
	Class   int
	Element int
}

// Compare returns a negative number, zero or a positive number when s is
// lower than, equal to or higher than o.
func (s Specificity) Compare(o Specificity) int {
	if s.ID != o.ID {
		return s.ID - o.ID
	}
	if s.Class != o.Class {
		return s.Class - o.Class
	}
	return s.Element - o.Element
}

// Source represents the origin of a style property
type Source int

const (
	SourceUserAgent Source = iota
	SourceAuthor
	SourceInline
	SourceInherited = Source(-1)
)

// StyleProperty represents a computed style property
type StyleProperty struct {
	Name        string
	Value       string
	Important   bool
	Source      Source
	Specificity Specificity
}

// ComputedStyle maps property names to their winning declaration.
type ComputedStyle map[string]StyleProperty

// Value returns the value of a property.
func (cs ComputedStyle) Value(name string) (string, bool) {
	p, ok := cs[name]
	return p.Value, ok
}

// properties inherited from the parent element
var inherited = []string{"color", "font-size", "text-align"}

// StyleEngine handles the CSS cascade and style computation
type StyleEngine struct {
	userAgent *css.Stylesheet
	author    []*css.Stylesheet
	baseSize  float64
}

// NewStyleEngine creates a style engine whose root font size is baseSize.
func NewStyleEngine(baseSize float64) *StyleEngine {
	return &StyleEngine{
		userAgent: defaultUserAgentStyles(),
		baseSize:  baseSize,
	}
}

// AddStylesheet adds an author stylesheet
func (e *StyleEngine) AddStylesheet(sheet *css.Stylesheet) {
	e.author = append(e.author, sheet)
}

// Compute returns the style of el. parent is the computed style of its
// parent element, nil at the root. font-size is resolved to points.
func (e *StyleEngine) Compute(el Element, parent ComputedStyle) ComputedStyle {
	cs := make(ComputedStyle)
	e.applyStylesheet(cs, el, e.userAgent, SourceUserAgent)
	for _, sheet := range e.author {
		e.applyStylesheet(cs, el, sheet, SourceAuthor)
	}
	if inline, ok := el.Attribute("style"); ok {
		apply(cs, css.ParseDeclarations(inline), Specificity{ID: 1}, SourceInline)
	}

	for _, name := range inherited {
		if _, ok := cs[name]; ok {
			continue
		}
		if p, ok := parent[name]; ok {
			p.Source = SourceInherited
			cs[name] = p
		}
	}

	parentSize := e.baseSize
	if parent != nil {
		parentSize = parent.FontSize(e.baseSize)
	}
	size := parentSize
	if p, ok := cs["font-size"]; ok && p.Source != SourceInherited {
		if v, err := css.ParseLength(p.Value, parentSize); err == nil && v > 0 {
			size = v
		}
	}
	p := cs["font-size"]
	p.Name = "font-size"
	p.Value = strconv.FormatFloat(size, 'f', -1, 64) + "pt"
	cs["font-size"] = p
	return cs
}

func (e *StyleEngine) applyStylesheet(cs ComputedStyle, el Element, sheet *css.Stylesheet, source Source) {
	for _, rule := range sheet.Rules {
		for _, selector := range rule.Selectors {
			if selectorMatches(el, selector) {
				apply(cs, rule.Declarations, calculateSpecificity(selector), source)
			}
		}
	}
}

// apply lets a declaration win over the current one when it is important
// and the current one is not, or when importance is equal and it comes from
// a later origin or has equal or higher specificity.
func apply(cs ComputedStyle, decls []*css.Declaration, spec Specificity, source Source) {
	for _, d := range decls {
		d, ok := normalize(d)
		if !ok {
			continue
		}
		cur, exists := cs[d.Property]
		win := !exists
		switch {
		case win:
		case d.Important != cur.Important:
			win = d.Important
		case source != cur.Source:
			win = source > cur.Source
		default:
			win = spec.Compare(cur.Specificity) >= 0
		}
		if win {
			cs[d.Property] = StyleProperty{
				Name:        d.Property,
				Value:       d.Value,
				Important:   d.Important,
				Source:      source,
				Specificity: spec,
			}
		}
	}
}

// normalize maps the background shorthand to background-color. It
// reports false for declarations without a usable value.
func normalize(d *css.Declaration) (*css.Declaration, bool) {
	if d.Property != "background" {
		return d, true
	}
	for _, part := range strings.Fields(d.Value) {
		if _, err := render.ParseColor(part); err == nil {
			return &css.Declaration{Property: "background-color", Value: part, Important: d.Important}, true
		}
	}
	return nil, false
}

// FontSize returns the resolved font size, or fallback.
func (cs ComputedStyle) FontSize(fallback float64) float64 {
	if v, ok := cs.Value("font-size"); ok {
		if n, err := css.ParseLength(v, fallback); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// Hidden reports display: none.
func (cs ComputedStyle) Hidden() bool {
	v, _ := cs.Value("display")
	return strings.EqualFold(strings.TrimSpace(v), "none")
}

// PageBreakBefore reports page-break-before: always or break-before: page.
func (cs ComputedStyle) PageBreakBefore() bool {
	if v, _ := cs.Value("page-break-before"); strings.EqualFold(v, "always") {
		return true
	}
	v, _ := cs.Value("break-before")
	return strings.EqualFold(v, "page")
}

// TextAttributes converts the style to layout attributes. Unknown colors
// and alignments are ignored.
func (cs ComputedStyle) TextAttributes(fallbackSize float64) layout.TextAttributes {
	attrs := layout.TextAttributes{FontSize: cs.FontSize(fallbackSize)}
	if v, ok := cs.Value("color"); ok {
		if c, err := render.ParseColor(v); err == nil {
			attrs.Foreground = c
		}
	}
	if v, ok := cs.Value("background-color"); ok {
		if c, err := render.ParseColor(v); err == nil {
			attrs = attrs.WithBackground(c)
		}
	}
	if v, ok := cs.Value("text-align"); ok {
		if a, err := layout.ParseAlignment(v); err == nil {
			attrs.Align = a
		}
	}
	return attrs
}

// selectorMatches checks if an element matches a selector made of
// compound selectors joined by descendant combinators.
func selectorMatches(el Element, selector string) bool {
	parts := strings.Fields(selector)
	if len(parts) == 0 || el == nil {
		return false
	}
	if !matchCompoundSelector(el, parts[len(parts)-1]) {
		return false
	}

	cur := el.ParentElement()
	for i := len(parts) - 2; i >= 0; i-- {
		found := false
		for anc := cur; anc != nil; anc = anc.ParentElement() {
			if matchCompoundSelector(anc, parts[i]) {
				found = true
				cur = anc.ParentElement()
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchCompoundSelector matches tag, #id and .class parts, eg:
// td.total, #summary, p.note.small or *. Attributes and pseudo-classes
// never match.
func matchCompoundSelector(el Element, sel string) bool {
	if sel == "" {
		return false
	}

	var (
		wantTag     string
		wantID      string
		wantClasses []string
	)
	i := 0
	if sel[0] != '.' && sel[0] != '#' {
		j := strings.IndexAny(sel, ".#")
		if j < 0 {
			j = len(sel)
		}
		wantTag, i = sel[:j], j
	}
	for i < len(sel) {
		j := strings.IndexAny(sel[i+1:], ".#")
		if j < 0 {
			j = len(sel)
		} else {
			j += i + 1
		}
		switch sel[i] {
		case '#':
			wantID = sel[i+1 : j]
		case '.':
			wantClasses = append(wantClasses, sel[i+1:j])
		}
		i = j
	}
	if strings.ContainsAny(wantTag+wantID+strings.Join(wantClasses, ""), "[:>+~") {
		return false
	}

	if wantTag != "" && wantTag != "*" && !strings.EqualFold(wantTag, el.Tag()) {
		return false
	}
	if wantID != "" {
		if id, _ := el.Attribute("id"); id != wantID {
			return false
		}
	}
	if len(wantClasses) > 0 {
		class, _ := el.Attribute("class")
		have := make(map[string]bool)
		for _, c := range strings.Fields(class) {
			have[c] = true
		}
		for _, need := range wantClasses {
			if !have[need] {
				return false
			}
		}
	}
	return true
}

func calculateSpecificity(selector string) Specificity {
	var s Specificity
	for _, part := range strings.Fields(selector) {
		s.ID += strings.Count(part, "#")
		s.Class += strings.Count(part, ".")
		if part[0] != '.' && part[0] != '#' && part[0] != '*' {
			s.Element++
		}
	}
	return s
}

func defaultUserAgentStyles() *css.Stylesheet {
	return css.MustParse(`
		h1 { font-size: 2em; }
		h2 { font-size: 1.5em; }
		h3 { font-size: 1.17em; }
		h5 { font-size: 0.83em; }
		h6 { font-size: 0.75em; }
		a { color: #0000ee; }
		th { background-color: lightgray; }
		caption, center { text-align: center; }
		small { font-size: 0.83em; }
		head, script, style, title, template { display: none; }
	`)
}
