package style

import (
	"testing"

	"github.com/momogentoo/pdfprintln/internal/layout"
	"github.com/momogentoo/pdfprintln/internal/parser/css"
	"github.com/momogentoo/pdfprintln/internal/render"
)

type element struct {
	tag    string
	attrs  map[string]string
	parent *element
}

func (e *element) Tag() string { return e.tag }

func (e *element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *element) ParentElement() Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func el(tag string, parent *element, attrs ...string) *element {
	m := make(map[string]string)
	for i := 0; i+1 < len(attrs); i += 2 {
		m[attrs[i]] = attrs[i+1]
	}
	return &element{tag: tag, attrs: m, parent: parent}
}

func TestCascadeOrder(t *testing.T) {
	e := NewStyleEngine(12)
	e.AddStylesheet(css.MustParse(`
		p { color: red; }
		p.note { color: green; }
		.warn { color: orange !important; }
		div p { text-align: right; }
	`))

	body := el("body", nil)
	div := el("div", body)
	tests := []struct {
		name  string
		node  *element
		color string
	}{
		{"type selector", el("p", body), "red"},
		{"class beats type", el("p", body, "class", "note"), "green"},
		{"inline beats author", el("p", body, "class", "note", "style", "color: blue"), "blue"},
		{"important beats inline", el("p", body, "class", "warn", "style", "color: blue"), "orange"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := e.Compute(tt.node, e.Compute(body, nil))
			if got, _ := cs.Value("color"); got != tt.color {
				t.Fatalf("color = %q, want %q", got, tt.color)
			}
		})
	}

	cs := e.Compute(el("p", div), nil)
	if got, _ := cs.Value("text-align"); got != "right" {
		t.Fatalf("descendant text-align = %q", got)
	}
	cs = e.Compute(el("p", body), nil)
	if _, ok := cs.Value("text-align"); ok {
		t.Fatal("descendant rule matched outside div")
	}
}

func TestInheritanceAndFontSize(t *testing.T) {
	e := NewStyleEngine(10)
	body := el("body", nil, "style", "color: navy; background-color: yellow")
	bodyStyle := e.Compute(body, nil)
	if got := bodyStyle.FontSize(0); got != 10 {
		t.Fatalf("root size = %v", got)
	}

	h1 := el("h1", body)
	h1Style := e.Compute(h1, bodyStyle)
	if got := h1Style.FontSize(0); got != 20 {
		t.Fatalf("h1 size = %v, want 20", got)
	}
	if got, _ := h1Style.Value("color"); got != "navy" {
		t.Fatalf("inherited color = %q", got)
	}
	if _, ok := h1Style.Value("background-color"); ok {
		t.Fatal("background must not inherit")
	}

	span := el("span", h1, "style", "font-size: 50%")
	if got := e.Compute(span, h1Style).FontSize(0); got != 10 {
		t.Fatalf("span size = %v, want 10", got)
	}
}

func TestTextAttributes(t *testing.T) {
	e := NewStyleEngine(12)
	td := el("th", nil, "style", "color: #ff0000; text-align: center; background: url(x.png) white")
	attrs := e.Compute(td, nil).TextAttributes(12)
	if attrs.Foreground != render.Red || attrs.Align != layout.AlignMiddle || attrs.FontSize != 12 {
		t.Fatalf("attrs = %+v", attrs)
	}
	if attrs.Background == nil || *attrs.Background != render.White {
		t.Fatalf("background = %v", attrs.Background)
	}

	plain := e.Compute(el("td", nil, "style", "color: nope"), nil).TextAttributes(12)
	if plain.Foreground != render.Black || plain.Background != nil {
		t.Fatalf("plain = %+v", plain)
	}
}

func TestDisplayAndBreaks(t *testing.T) {
	e := NewStyleEngine(12)
	if !e.Compute(el("script", nil), nil).Hidden() {
		t.Fatal("script should be hidden")
	}
	if !e.Compute(el("div", nil, "style", "page-break-before: always"), nil).PageBreakBefore() {
		t.Fatal("page-break-before not detected")
	}
	if !e.Compute(el("div", nil, "style", "break-before: page"), nil).PageBreakBefore() {
		t.Fatal("break-before not detected")
	}
}
