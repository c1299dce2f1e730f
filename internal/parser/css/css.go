// Package css parses the small CSS subset used by the HTML importer:
// <style> blocks with simple selectors and inline style attributes.
package css

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parser represents a CSS parser
type Parser struct{}

// Rule represents a CSS rule
type Rule struct {
	Selectors    []string
	Declarations []*Declaration
}

// Declaration represents a CSS declaration (property-value pair)
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Stylesheet represents a parsed CSS stylesheet
type Stylesheet struct {
	Rules []*Rule
}

// NewParser creates a new CSS parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseString parses CSS from a string
func (p *Parser) ParseString(content string) (*Stylesheet, error) {
	return p.Parse(strings.NewReader(content))
}

// Parse parses CSS from an io.Reader. Malformed rules are skipped.
func (p *Parser) Parse(r io.Reader) (*Stylesheet, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	sheet := &Stylesheet{}
	for _, ruleStr := range splitRules(removeComments(string(content))) {
		rule, err := parseRule(ruleStr)
		if err != nil {
			continue
		}
		sheet.Rules = append(sheet.Rules, rule)
	}
	return sheet, nil
}

// MustParse parses a stylesheet known to be valid.
func MustParse(content string) *Stylesheet {
	sheet, err := NewParser().ParseString(content)
	if err != nil {
		panic(err)
	}
	return sheet
}

func parseRule(ruleStr string) (*Rule, error) {
	selectorStr, body, ok := strings.Cut(ruleStr, "{")
	if !ok {
		return nil, errors.New("invalid rule format")
	}
	// @page, @media and friends are not supported.
	if strings.HasPrefix(strings.TrimSpace(selectorStr), "@") {
		return nil, errors.New("at-rules are not supported")
	}

	selectors := parseSelectors(selectorStr)
	if len(selectors) == 0 {
		return nil, errors.New("no selectors found")
	}
	return &Rule{
		Selectors:    selectors,
		Declarations: ParseDeclarations(strings.TrimSuffix(strings.TrimSpace(body), "}")),
	}, nil
}

func parseSelectors(selectorStr string) []string {
	var out []string
	for _, s := range strings.Split(selectorStr, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseDeclarations parses a declaration list such as the value of a style
// attribute. Property names are lower-cased; entries without a colon are
// dropped.
func ParseDeclarations(s string) []*Declaration {
	var out []*Declaration
	for _, declStr := range strings.Split(removeComments(s), ";") {
		property, value, ok := strings.Cut(declStr, ":")
		if !ok {
			continue
		}
		property = strings.ToLower(strings.TrimSpace(property))
		value = strings.TrimSpace(value)
		if property == "" || value == "" {
			continue
		}

		important := false
		if v, found := strings.CutSuffix(value, "!important"); found {
			important = true
			value = strings.TrimSpace(v)
		}
		out = append(out, &Declaration{
			Property:  property,
			Value:     value,
			Important: important,
		})
	}
	return out
}

func removeComments(content string) string {
	var b strings.Builder
	for {
		start := strings.Index(content, "/*")
		if start < 0 {
			b.WriteString(content)
			return b.String()
		}
		b.WriteString(content[:start])
		end := strings.Index(content[start+2:], "*/")
		if end < 0 {
			return b.String()
		}
		content = content[start+2+end+2:]
	}
}

// splitRules splits CSS content into individual rules
func splitRules(content string) []string {
	var (
		rules   []string
		current strings.Builder
		depth   int
	)
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				current.WriteByte(c)
				rules = append(rules, strings.TrimSpace(current.String()))
				current.Reset()
				continue
			}
		}
		if depth > 0 || !isWhitespace(c) || current.Len() > 0 {
			current.WriteByte(c)
		}
	}
	return rules
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// ParseLength converts a CSS length to points. em and % are relative to
// base; a bare number is taken as points.
func ParseLength(value string, base float64) (float64, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if size, ok := absoluteSizes[v]; ok {
		return size, nil
	}

	units := []struct {
		suffix string
		scale  float64
	}{
		{"rem", base},
		{"em", base},
		{"pt", 1},
		{"px", 0.75},
		{"mm", 72 / 25.4},
		{"cm", 72 / 2.54},
		{"in", 72},
		{"%", base / 100},
	}
	scale := 1.0
	for _, u := range units {
		if n, ok := strings.CutSuffix(v, u.suffix); ok {
			v, scale = n, u.scale
			break
		}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", value)
	}
	return n * scale, nil
}

// Font size keywords in points.
var absoluteSizes = map[string]float64{
	"xx-small": 7,
	"x-small":  7.5,
	"small":    10,
	"medium":   12,
	"large":    13.5,
	"x-large":  18,
	"xx-large": 24,
}
