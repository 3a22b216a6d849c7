// Package compare is the comparison engine: it extracts blocks from two
// document trees, matches them across documents, classifies every block as
// unchanged, modified, added, or deleted, and reassembles two aligned output
// sequences plus a change summary.
package compare

import (
	"github.com/tsawler/redline/blocks"
	"github.com/tsawler/redline/document"
	"github.com/tsawler/redline/similarity"
)

// State is the classification of one output node.
type State string

const (
	// StateUnchanged marks a block that matched exactly.
	StateUnchanged State = "unchanged"
	// StateModified marks a block paired fuzzily; paragraph pairs carry
	// word-diff spans, tables and images are opaque.
	StateModified State = "modified"
	// StateAdded marks a block present only on the right.
	StateAdded State = "added"
	// StateDeleted marks a block present only on the left.
	StateDeleted State = "deleted"
	// StatePlaceholder marks a content-free stand-in emitted opposite an
	// added or deleted block, preserving vertical alignment.
	StatePlaceholder State = "placeholder"
)

// Span is one word-diff fragment inside a modified paragraph.
type Span struct {
	Kind similarity.OpKind `json:"kind"`
	Text string            `json:"text"`
}

// OutputNode is the rendering-neutral result for one block position. It
// carries enough to render all four states: plain content for unchanged and
// opaque-modified blocks, spans for word-diffed paragraphs, and dimensions
// for placeholders.
type OutputNode struct {
	BlockType blocks.Type `json:"type"`
	State     State       `json:"state"`
	Content   string      `json:"content,omitempty"`
	// Spans is set only for modified paragraphs: on the left they cover
	// equal and deleted text, on the right equal and inserted text.
	Spans  []Span `json:"spans,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	ID     string `json:"id,omitempty"`
	// Node is a deep copy of the source element, detached from the input
	// tree. Placeholders have no node.
	Node *document.Node `json:"-"`
}

// Text returns the node's literal text: concatenated span text for
// word-diffed paragraphs, Content otherwise, and "" for placeholders.
func (n OutputNode) Text() string {
	if len(n.Spans) == 0 {
		return n.Content
	}
	var out string
	for _, s := range n.Spans {
		out += s.Text
	}
	return out
}

// Summary counts the comparison outcome. Exact matches contribute to none
// of the counters.
type Summary struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Changes   int `json:"changes"`
}

// Result is the full outcome of one comparison. Left and Right always have
// equal length: every position holds either real content or a placeholder.
type Result struct {
	Left    []OutputNode `json:"left"`
	Right   []OutputNode `json:"right"`
	Summary Summary      `json:"summary"`
	// Degraded is set when an internal failure forced the fail-open path:
	// both sides echo their input unchanged and the summary is zero.
	Degraded bool `json:"degraded,omitempty"`
}
