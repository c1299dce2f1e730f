// Package html imports HTML documents as line printing programs.
package html

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/momogentoo/pdfprintln/internal/style"
)

// Parser represents an HTML parser
type Parser struct{}

// Node represents an HTML node in the document tree
type Node struct {
	Type        html.NodeType
	Data        string
	Attr        []html.Attribute
	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	PrevSibling *Node
	NextSibling *Node
}

var _ style.Element = (*Node)(nil)

// Document represents a parsed HTML document
type Document struct {
	Root *Node
}

// NewParser creates a new HTML parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseString parses HTML from a string
func (p *Parser) ParseString(content string) (*Document, error) {
	return p.Parse(strings.NewReader(content))
}

// Parse parses HTML from an io.Reader
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{Root: convertNode(node, nil)}, nil
}

func convertNode(n *html.Node, parent *Node) *Node {
	node := &Node{
		Type:   n.Type,
		Data:   n.Data,
		Attr:   n.Attr,
		Parent: parent,
	}

	var last *Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		child := convertNode(c, node)
		if node.FirstChild == nil {
			node.FirstChild = child
		}
		if last != nil {
			last.NextSibling = child
			child.PrevSibling = last
		}
		last = child
	}
	node.LastChild = last
	return node
}

// Tag returns the lower-case element name, empty for other nodes.
func (n *Node) Tag() string {
	if n.Type != html.ElementNode {
		return ""
	}
	return n.Data
}

// Attribute returns the value of an attribute.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// ParentElement returns the closest element ancestor.
func (n *Node) ParentElement() style.Element {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

// Find returns the first element named tag in document order.
func (n *Node) Find(tag string) *Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

// Title returns the text of the document's <title>.
func (d *Document) Title() string {
	t := d.Root.Find("title")
	if t == nil {
		return ""
	}
	var b strings.Builder
	for c := t.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return collapseSpace(b.String())
}

// Stylesheets returns the text of every <style> block in document order.
func (d *Document) Stylesheets() []string {
	var styles []string
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.Type == html.ElementNode && cur.Data == "style" {
			var b strings.Builder
			for c := cur.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
					b.WriteString("\n")
				}
			}
			if text := strings.TrimSpace(b.String()); text != "" {
				styles = append(styles, text)
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.Root)
	return styles
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
