package dsl_test

import (
	"strings"
	"testing"

	"github.com/momogentoo/pdfprintln/internal/layout"
	"github.com/momogentoo/pdfprintln/internal/pagination"
	"github.com/momogentoo/pdfprintln/internal/parser/dsl"
	"github.com/momogentoo/pdfprintln/internal/render"
	"github.com/momogentoo/pdfprintln/internal/script"
)

const sampleScript = `
// quarterly report
page A6 portrait
numbering on pattern "Page %d" size 7
size 30
println middle "This is a Report" color red background yellow
size 12; blank
row {
  30 "Foo" background lightgray
  70 "Bar" background #ffff00 align right size 9
}
text center middle "Draft" size 40 color gray
repeat 80 {
  println "Hello \"world\""
}
newpage
font Times BI
margin 20
spacing 2.5
`

func TestParseAST(t *testing.T) {
	ast, err := dsl.ParseASTString("report.pln", sampleScript)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var kinds []string
	for _, st := range ast.Statements {
		kinds = append(kinds, st.Kind())
	}
	want := "page numbering size println size blank row text repeat newpage font margin spacing"
	if got := strings.Join(kinds, " "); got != want {
		t.Fatalf("kinds = %s\nwant    %s", got, want)
	}

	row := ast.Statements[6].Row
	if len(row.Cells) != 2 || row.Cells[1].Weight != 70 || string(row.Cells[1].Text) != "Bar" {
		t.Fatalf("row = %+v", row)
	}
	if len(row.Cells[1].Options) != 3 {
		t.Fatalf("cell options = %d", len(row.Cells[1].Options))
	}
	if ast.Statements[6].Pos.Line != 8 {
		t.Fatalf("row at line %d, want 8", ast.Statements[6].Pos.Line)
	}
}

func TestCompile(t *testing.T) {
	prog, err := dsl.ParseString(sampleScript)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Ops) != 13 {
		t.Fatalf("ops = %d", len(prog.Ops))
	}

	page := prog.Ops[0].(script.SetPage)
	if *page.Size != pagination.PageSizeA6 || *page.Orientation != pagination.Portrait {
		t.Fatalf("page = %v %v", *page.Size, *page.Orientation)
	}

	num := prog.Ops[1].(script.Numbering)
	if !num.On || num.Pattern != "Page %d" || num.Size != 7 {
		t.Fatalf("numbering = %+v", num)
	}

	line := prog.Ops[3].(script.Line)
	if line.Text != "This is a Report" || line.Align != layout.AlignMiddle || line.Foreground != render.Red {
		t.Fatalf("line = %+v", line)
	}
	if line.Background == nil || *line.Background != render.Yellow {
		t.Fatalf("background = %v", line.Background)
	}

	row := prog.Ops[6].(script.Row)
	if row.Cells[0].Weight != 30 || *row.Cells[0].Attrs.Background != render.LightGray {
		t.Fatalf("cell 1 = %+v", row.Cells[0])
	}
	c2 := row.Cells[1].Attrs
	if *c2.Background != render.Yellow || c2.Align != layout.AlignRight || c2.FontSize != 9 {
		t.Fatalf("cell 2 = %+v", c2)
	}

	text := prog.Ops[7].(script.Text)
	if text.XAnchor != script.AnchorCenter || text.YAnchor != script.AnchorCenter || text.Attrs.FontSize != 40 {
		t.Fatalf("text = %+v", text)
	}

	rep := prog.Ops[8].(script.Repeat)
	if rep.Count != 80 || len(rep.Body.Ops) != 1 {
		t.Fatalf("repeat = %+v", rep)
	}
	if got := rep.Body.Ops[0].(script.Line).Text; got != `Hello "world"` {
		t.Fatalf("repeated line = %q", got)
	}

	font := prog.Ops[10].(script.SetFont)
	if font.Family != "Times" || font.Style != "BI" {
		t.Fatalf("font = %+v", font)
	}
	if got := prog.Ops[12].(script.SetSpacing).Spacing; got != 2.5 {
		t.Fatalf("spacing = %v", got)
	}
}

func TestTextCoordinates(t *testing.T) {
	prog, err := dsl.ParseString(`text 100 200.5 "abs"`)
	if err != nil {
		t.Fatal(err)
	}
	op := prog.Ops[0].(script.Text)
	if op.X != 100 || op.Y != 200.5 || op.XAnchor != script.AnchorNone {
		t.Fatalf("text = %+v", op)
	}
	if op.Attrs.Foreground != render.Black {
		t.Fatalf("default color = %v", op.Attrs.Foreground)
	}
}

func TestPageAcceptsEitherOrder(t *testing.T) {
	prog, err := dsl.ParseString("page landscape legal\npage portrait")
	if err != nil {
		t.Fatal(err)
	}
	first := prog.Ops[0].(script.SetPage)
	if *first.Size != pagination.PageSizeLegal || *first.Orientation != pagination.Landscape {
		t.Fatalf("first = %v %v", *first.Size, *first.Orientation)
	}
	second := prog.Ops[1].(script.SetPage)
	if second.Size != nil || *second.Orientation != pagination.Portrait {
		t.Fatalf("second = %+v", second)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"syntax", `println`, "unexpected"},
		{"unknown statement", `shout "x"`, "unexpected"},
		{"bad color", `println "x" color nocolor`, "nocolor"},
		{"option not allowed", `text 1 2 "x" background red`, "not allowed"},
		{"bad page", `page B5`, "B5"},
		{"twice", `page a4 a5`, "twice"},
		{"zero size", `println "x" size 0`, "font size"},
		{"empty row", `row { }`, "no cells"},
		{"pattern without verb", `numbering on pattern "Page"`, "verb"},
		{"position", "blank\nprintln \"x\" color nocolor", "2:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dsl.ParseString(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}
