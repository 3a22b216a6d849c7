// Package render serializes comparison results as a side-by-side HTML page.
//
// The engine's output is rendering-neutral; this package is one consumer of
// it. It draws word-level changes with <del>/<ins>, marks whole blocks with
// state classes, and emits sized empty divs for placeholders so the two
// panes stay vertically aligned. Interaction concerns (scroll sync, loading
// states) belong to the embedding application, not here.
package render

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/redline/blocks"
	"github.com/tsawler/redline/compare"
	"github.com/tsawler/redline/similarity"
)

const styles = `
.rl-wrap { display: flex; gap: 16px; font-family: sans-serif; }
.rl-pane { flex: 1 1 50%; min-width: 0; }
.rl-block { margin: 8px 0; }
.rl-added { background: #e6ffec; }
.rl-deleted { background: #ffebe9; }
.rl-modified { background: #fff8c5; }
.rl-placeholder { background: #f6f8fa; border: 1px dashed #d0d7de; }
ins { background: #abf2bc; text-decoration: none; }
del { background: #ffc1c0; }
`

// HTML writes res as a complete side-by-side HTML document.
func HTML(w io.Writer, res *compare.Result) error {
	doc := buildPage(res)
	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("rendering result: %w", err)
	}
	return nil
}

func buildPage(res *compare.Result) *html.Node {
	head := elem("head")
	head.AppendChild(withChild(elem("title"), text("Document comparison")))
	head.AppendChild(withChild(elem("style"), text(styles)))

	body := elem("body")
	body.AppendChild(summaryLine(res.Summary))

	wrap := classed(elem("div"), "rl-wrap")
	wrap.AppendChild(pane(res.Left))
	wrap.AppendChild(pane(res.Right))
	body.AppendChild(wrap)

	root := elem("html")
	root.AppendChild(head)
	root.AppendChild(body)

	docNode := &html.Node{Type: html.DocumentNode}
	docNode.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	docNode.AppendChild(root)
	return docNode
}

func summaryLine(s compare.Summary) *html.Node {
	p := classed(elem("p"), "rl-summary")
	p.AppendChild(text(fmt.Sprintf("%d added, %d deleted, %d changed", s.Additions, s.Deletions, s.Changes)))
	return p
}

func pane(nodes []compare.OutputNode) *html.Node {
	div := classed(elem("div"), "rl-pane")
	for _, n := range nodes {
		div.AppendChild(blockNode(n))
	}
	return div
}

func blockNode(n compare.OutputNode) *html.Node {
	if n.State == compare.StatePlaceholder {
		ph := classed(elem("div"), "rl-block rl-placeholder")
		setAttr(ph, "style", fmt.Sprintf("min-width:%dpx;min-height:%dpx", n.Width, n.Height))
		return ph
	}

	wrapper := classed(elem("div"), "rl-block rl-"+string(n.State))

	switch {
	case len(n.Spans) > 0:
		// Word-diffed paragraph: rebuild the text with ins/del marks.
		p := elem("p")
		for _, span := range n.Spans {
			switch span.Kind {
			case similarity.OpDelete:
				p.AppendChild(withChild(elem("del"), text(span.Text)))
			case similarity.OpInsert:
				p.AppendChild(withChild(elem("ins"), text(span.Text)))
			default:
				p.AppendChild(text(span.Text))
			}
		}
		wrapper.AppendChild(p)

	case n.Node != nil:
		// The output node carries a detached copy of the source element;
		// graft a fresh copy in whole (tables and images render as
		// themselves) so the result stays renderable more than once.
		wrapper.AppendChild(n.Node.Clone().HTMLNode())

	case n.BlockType == blocks.Image:
		img := elem("img")
		setAttr(img, "src", n.Content)
		wrapper.AppendChild(img)

	default:
		wrapper.AppendChild(withChild(elem("p"), text(n.Content)))
	}

	return wrapper
}

func elem(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withChild(parent, child *html.Node) *html.Node {
	parent.AppendChild(child)
	return parent
}

func classed(n *html.Node, class string) *html.Node {
	setAttr(n, "class", class)
	return n
}

func setAttr(n *html.Node, key, val string) {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
