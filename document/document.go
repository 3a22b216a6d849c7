// Package document provides the parsed document tree that the comparison
// engine walks. A Document wraps an HTML node tree and exposes the minimal
// capabilities the engine needs: ordered child enumeration, tag and attribute
// inspection, text-content retrieval, and deep copying of nodes so output
// trees stay independent of their source.
package document

import (
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed document ready for block extraction.
type Document struct {
	root     *Node
	title    string
	metadata map[string]string
}

// Node wraps a single node in the document tree.
type Node struct {
	n *html.Node
}

// Root returns the document's root node.
func (d *Document) Root() *Node {
	return d.root
}

// Title returns the document title, if any.
func (d *Document) Title() string {
	return d.title
}

// Metadata returns the document's meta name/content pairs.
func (d *Document) Metadata() map[string]string {
	return d.metadata
}

// Body returns the body element, or the root when no body exists
// (e.g. a parsed fragment).
func (d *Document) Body() *Node {
	if body := findElement(d.root.n, "body"); body != nil {
		return &Node{n: body}
	}
	return d.root
}

// IsElement reports whether the node is an element (as opposed to text,
// comment, or document nodes).
func (nd *Node) IsElement() bool {
	return nd.n.Type == html.ElementNode
}

// IsText reports whether the node is a text node.
func (nd *Node) IsText() bool {
	return nd.n.Type == html.TextNode
}

// Tag returns the element's tag name, or "" for non-element nodes.
func (nd *Node) Tag() string {
	if nd.n.Type != html.ElementNode {
		return ""
	}
	return nd.n.Data
}

// Attr returns the value of the named attribute, or "" if absent.
func (nd *Node) Attr(key string) string {
	for _, a := range nd.n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Children returns the node's children in document order.
func (nd *Node) Children() []*Node {
	var kids []*Node
	for c := nd.n.FirstChild; c != nil; c = c.NextSibling {
		kids = append(kids, &Node{n: c})
	}
	return kids
}

// Text extracts all text content from the node and its descendants.
// Script, style, and similar non-content subtrees are skipped; <br>
// becomes a newline and block boundaries become spaces.
func (nd *Node) Text() string {
	var b strings.Builder
	textContent(nd.n, &b)
	return strings.TrimSpace(b.String())
}

// Clone returns a deep copy of the node, detached from the source tree.
func (nd *Node) Clone() *Node {
	return &Node{n: cloneNode(nd.n)}
}

// HTMLNode returns the underlying parsed node. Renderers use it to graft
// cloned content into an output tree.
func (nd *Node) HTMLNode() *html.Node {
	return nd.n
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}

// skipContent returns true for elements whose subtrees carry no
// human-visible text.
func skipContent(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

func textContent(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if skipContent(n.Data) {
			return
		}
		if n.Data == "br" {
			b.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContent(c, b)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr":
			b.WriteString(" ")
		}
	}
}

func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tagName); found != nil {
			return found
		}
	}
	return nil
}
