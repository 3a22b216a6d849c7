package blocks

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tsawler/redline/document"
)

// Minimum placeholder dimensions. Placeholders must never collapse to zero
// size, or the two output panes drift out of alignment.
const (
	MinWidth       = 300
	MinHeight      = 40
	MinImageHeight = 100
)

// ExtractOptions holds configuration for block extraction.
type ExtractOptions struct {
	// ParagraphTags lists additional tags treated as paragraph blocks,
	// beyond the default "p" (e.g. "h1".."h6", "li", "blockquote").
	ParagraphTags []string
}

// Extract walks the document body and returns its blocks in traversal order.
func Extract(doc *document.Document) []Block {
	return ExtractWithOptions(doc, ExtractOptions{})
}

// ExtractWithOptions walks the document body with the given options.
//
// A node becomes a block when its tag is a paragraph tag, "table", or "img".
// Accepted paragraphs and tables terminate the descent, so candidates nested
// inside them are skipped entirely rather than extracted on their own.
func ExtractWithOptions(doc *document.Document, opts ExtractOptions) []Block {
	e := &extractor{
		paragraphTags: map[string]bool{"p": true},
	}
	for _, tag := range opts.ParagraphTags {
		e.paragraphTags[tag] = true
	}

	if doc != nil {
		e.walk(doc.Body())
	}
	return e.out
}

type extractor struct {
	paragraphTags map[string]bool
	out           []Block
}

func (e *extractor) walk(n *document.Node) {
	if n.IsElement() {
		tag := n.Tag()
		if skipElement(tag) {
			return
		}

		switch {
		case e.paragraphTags[tag]:
			e.emitParagraph(n)
			return
		case tag == "table":
			e.emitTable(n)
			return
		case tag == "img":
			e.emitImage(n)
			return
		}
	}

	for _, c := range n.Children() {
		e.walk(c)
	}
}

func (e *extractor) emitParagraph(n *document.Node) {
	content := collapseWhitespace(n.Text())
	e.emit(Block{
		Type:       Paragraph,
		Content:    content,
		CompareKey: cases.Fold().String(content),
		Node:       n,
		Width:      dimension(n, "width", MinWidth),
		Height:     dimension(n, "height", MinHeight),
	})
}

func (e *extractor) emitTable(n *document.Node) {
	key := tableKey(n)
	e.emit(Block{
		Type:       Table,
		Content:    key,
		CompareKey: key,
		Node:       n,
		Width:      dimension(n, "width", MinWidth),
		Height:     dimension(n, "height", MinHeight),
	})
}

func (e *extractor) emitImage(n *document.Node) {
	src := n.Attr("src")
	e.emit(Block{
		Type:       Image,
		Content:    src,
		CompareKey: src,
		Node:       n,
		Width:      dimension(n, "width", MinWidth),
		Height:     dimension(n, "height", MinImageHeight),
	})
}

func (e *extractor) emit(b Block) {
	b.Index = len(e.out)
	b.ID = blockID(b.Type, b.Index, b.CompareKey)
	e.out = append(e.out, b)
}

// tableKey builds the row-major comparison key: cell texts joined by tabs,
// rows joined by newlines.
func tableKey(table *document.Node) string {
	var rows []string
	collectRows(table, &rows)
	return strings.Join(rows, "\n")
}

func collectRows(n *document.Node, rows *[]string) {
	for _, c := range n.Children() {
		if !c.IsElement() {
			continue
		}
		if c.Tag() == "tr" {
			var cells []string
			for _, cell := range c.Children() {
				if cell.IsElement() && (cell.Tag() == "td" || cell.Tag() == "th") {
					cells = append(cells, collapseWhitespace(cell.Text()))
				}
			}
			if len(cells) > 0 {
				*rows = append(*rows, strings.Join(cells, "\t"))
			}
			continue
		}
		// thead, tbody, tfoot
		collectRows(c, rows)
	}
}

// dimension reads a numeric attribute, falling back to and flooring at min.
func dimension(n *document.Node, attr string, min int) int {
	val := n.Attr(attr)
	if val == "" {
		return min
	}
	var d int
	if _, err := fmt.Sscanf(val, "%d", &d); err != nil || d < min {
		return min
	}
	return d
}

// collapseWhitespace reduces runs of whitespace to single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// skipElement returns true for elements whose subtrees never contribute
// blocks.
func skipElement(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head":
		return true
	}
	return false
}
