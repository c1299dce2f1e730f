package css

import (
	"math"
	"testing"
)

func TestParseStylesheet(t *testing.T) {
	sheet, err := NewParser().ParseString(`
		/* headings */
		h1, h2 { font-size: 2em; color: red !important }
		table td.total { background-color: #eee; }
		@page { margin: 1in }
		broken
	`)
	if err != nil {
		t.Fatal(err)
	}
	if len(sheet.Rules) != 2 {
		t.Fatalf("rules = %d, want 2", len(sheet.Rules))
	}

	r := sheet.Rules[0]
	if len(r.Selectors) != 2 || r.Selectors[0] != "h1" || r.Selectors[1] != "h2" {
		t.Fatalf("selectors = %q", r.Selectors)
	}
	if len(r.Declarations) != 2 {
		t.Fatalf("declarations = %d", len(r.Declarations))
	}
	if d := r.Declarations[1]; d.Property != "color" || d.Value != "red" || !d.Important {
		t.Fatalf("color = %+v", d)
	}

	if got := sheet.Rules[1].Selectors[0]; got != "table td.total" {
		t.Fatalf("descendant selector = %q", got)
	}
}

func TestParseDeclarations(t *testing.T) {
	decls := ParseDeclarations(" Color : Blue; ; nonsense; text-align:center;/* x */font-size: 9pt ")
	want := []Declaration{
		{Property: "color", Value: "Blue"},
		{Property: "text-align", Value: "center"},
		{Property: "font-size", Value: "9pt"},
	}
	if len(decls) != len(want) {
		t.Fatalf("decls = %d", len(decls))
	}
	for i, w := range want {
		if *decls[i] != w {
			t.Errorf("decl %d = %+v, want %+v", i, *decls[i], w)
		}
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"12", 12},
		{"9pt", 9},
		{"16px", 12},
		{"2em", 24},
		{"1.5rem", 18},
		{"50%", 6},
		{"1in", 72},
		{"25.4mm", 72},
		{"large", 13.5},
	}
	for _, tt := range tests {
		got, err := ParseLength(tt.value, 12)
		if err != nil {
			t.Fatalf("%s: %v", tt.value, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tt.value, got, tt.want)
		}
	}
	if _, err := ParseLength("wide", 12); err == nil {
		t.Fatal("expected error")
	}
}
