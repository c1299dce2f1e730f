// Package dsl parses the line printing script language.
//
// A script is a list of statements, one per line or separated by ';':
//
//	page letter landscape
//	numbering on pattern "Page %d" size 6
//	size 30
//	println middle "This is a Report" color red background yellow
//	blank
//	row {
//	  30 "Foo" background lightgray
//	  70 "Bar" background #ffff00 align right
//	}
//	text center middle "Draft" size 40 color gray
//	repeat 80 { println "Hello" }
//	newpage
//
// Comments start with // and run to the end of the line.
package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
	)
)

// Script is the root AST node.
type Script struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Statements []*Statement   `parser:"Newline* ( @@ ( ';' | Newline )* )*"`
}

// Statement is a single command. Exactly one field is set.
type Statement struct {
	Pos       lexer.Position `parser:"" json:"-"`
	Size      *float64       `parser:"  'size' @Number"`
	Font      *FontStmt      `parser:"| @@"`
	Margin    *float64       `parser:"| 'margin' @Number"`
	Spacing   *float64       `parser:"| 'spacing' @Number"`
	Page      *PageStmt      `parser:"| @@"`
	Numbering *NumberingStmt `parser:"| @@"`
	Println   *PrintlnStmt   `parser:"| @@"`
	Blank     bool           `parser:"| @'blank'"`
	Row       *RowStmt       `parser:"| @@"`
	NewPage   bool           `parser:"| @'newpage'"`
	Text      *TextStmt      `parser:"| @@"`
	Repeat    *RepeatStmt    `parser:"| @@"`
}

// Kind returns the statement keyword.
func (s *Statement) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Size != nil:
		return "size"
	case s.Font != nil:
		return "font"
	case s.Margin != nil:
		return "margin"
	case s.Spacing != nil:
		return "spacing"
	case s.Page != nil:
		return "page"
	case s.Numbering != nil:
		return "numbering"
	case s.Println != nil:
		return "println"
	case s.Blank:
		return "blank"
	case s.Row != nil:
		return "row"
	case s.NewPage:
		return "newpage"
	case s.Text != nil:
		return "text"
	case s.Repeat != nil:
		return "repeat"
	default:
		return "unknown"
	}
}

// FontStmt selects the session font, eg: font Times BI.
type FontStmt struct {
	Family string `parser:"'font' @Ident"`
	Style  string `parser:"@Ident?"`
}

// PageStmt sets the page size, the orientation or both, in any order.
type PageStmt struct {
	Params []string `parser:"'page' @Ident+"`
}

// NumberingStmt turns page number footers on or off.
type NumberingStmt struct {
	State   string    `parser:"'numbering' @( 'on' | 'off' )"`
	Options []*Option `parser:"@@*"`
}

// PrintlnStmt prints a line, with an optional leading alignment.
type PrintlnStmt struct {
	Align   string        `parser:"'println' @( 'left' | 'right' | 'middle' | 'center' )?"`
	Text    StringLiteral `parser:"@String"`
	Options []*Option     `parser:"@@*"`
}

// RowStmt prints weighted cells side by side.
type RowStmt struct {
	Cells []*Cell `parser:"'row' '{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Cell is one column of a row: its weight, text and options.
type Cell struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Weight  float64        `parser:"@Number"`
	Text    StringLiteral  `parser:"@String"`
	Options []*Option      `parser:"@@*"`
}

// TextStmt draws text at an absolute position.
type TextStmt struct {
	X       Coord         `parser:"'text' @@"`
	Y       Coord         `parser:"@@"`
	Text    StringLiteral `parser:"@String"`
	Options []*Option     `parser:"@@*"`
}

// Coord is a number of points or the keyword center/middle.
type Coord struct {
	Value  *float64 `parser:"  @Number"`
	Anchor string   `parser:"| @( 'center' | 'middle' )"`
}

// RepeatStmt runs its body Count times.
type RepeatStmt struct {
	Count int          `parser:"'repeat' @Number"`
	Body  []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Option is a keyword argument trailing a statement.
type Option struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Size       *float64       `parser:"  'size' @Number"`
	Color      *string        `parser:"| 'color' @( Color | Ident )"`
	Background *string        `parser:"| 'background' @( Color | Ident )"`
	Align      *string        `parser:"| 'align' @Ident"`
	Pattern    *StringLiteral `parser:"| 'pattern' @String"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// ParseAST parses a script into its syntax tree. name is used in error
// positions and may be empty.
func ParseAST(name string, r io.Reader) (*Script, error) {
	return scriptParser.Parse(name, r)
}

// ParseASTString parses a script held in a string.
func ParseASTString(name, input string) (*Script, error) {
	return scriptParser.ParseString(name, input)
}
