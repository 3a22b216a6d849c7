package compare

import (
	"github.com/tsawler/redline/blocks"
	"github.com/tsawler/redline/matcher"
	"github.com/tsawler/redline/similarity"
)

// classified is one matched position before assembly: a left node, a right
// node, and the sort key that restores document order.
type classified struct {
	key         int // left.Index, or right.Index when no left block exists
	left, right OutputNode
}

// classify turns the match partition into paired output nodes and counts the
// summary. Entry order is preserved so the assembler's stable sort can break
// index ties by classification order.
func (e *Engine) classify(m matcher.Result) ([]classified, Summary) {
	entries := m.Entries()
	out := make([]classified, 0, len(entries))
	var sum Summary

	for _, entry := range entries {
		switch entry.Kind {
		case matcher.Exact:
			out = append(out, classified{
				key:   entry.Left.Index,
				left:  contentNode(*entry.Left, StateUnchanged, nil),
				right: contentNode(*entry.Right, StateUnchanged, nil),
			})

		case matcher.Modified:
			left, right := e.classifyModified(*entry.Left, *entry.Right)
			out = append(out, classified{key: entry.Left.Index, left: left, right: right})
			sum.Changes++

		case matcher.DeletedOnly:
			out = append(out, classified{
				key:   entry.Left.Index,
				left:  contentNode(*entry.Left, StateDeleted, nil),
				right: placeholderNode(*entry.Left),
			})
			sum.Deletions++

		case matcher.AddedOnly:
			out = append(out, classified{
				key:   entry.Right.Index,
				left:  placeholderNode(*entry.Right),
				right: contentNode(*entry.Right, StateAdded, nil),
			})
			sum.Additions++
		}
	}

	return out, sum
}

// classifyModified builds both sides of a fuzzy pair. Paragraph pairs get
// word-level spans; a table or image on either side makes the pair opaque.
func (e *Engine) classifyModified(left, right blocks.Block) (OutputNode, OutputNode) {
	if left.Type != blocks.Paragraph || right.Type != blocks.Paragraph {
		return contentNode(left, StateModified, nil), contentNode(right, StateModified, nil)
	}

	ops := e.sim.WordDiff(left.Content, right.Content)

	var leftSpans, rightSpans []Span
	for _, op := range ops {
		span := Span{Kind: op.Kind, Text: op.Text}
		switch op.Kind {
		case similarity.OpEqual:
			leftSpans = append(leftSpans, span)
			rightSpans = append(rightSpans, span)
		case similarity.OpDelete:
			leftSpans = append(leftSpans, span)
		case similarity.OpInsert:
			rightSpans = append(rightSpans, span)
		}
	}

	return contentNode(left, StateModified, leftSpans), contentNode(right, StateModified, rightSpans)
}

func contentNode(b blocks.Block, state State, spans []Span) OutputNode {
	n := OutputNode{
		BlockType: b.Type,
		State:     state,
		Content:   b.Content,
		Spans:     spans,
		Width:     b.Width,
		Height:    b.Height,
		ID:        b.ID,
	}
	if b.Node != nil {
		n.Node = b.Node.Clone()
	}
	return n
}

// placeholderNode carries only the block's type and minimum dimensions: its
// job is to keep the opposite pane occupying the same vertical space.
func placeholderNode(b blocks.Block) OutputNode {
	return OutputNode{
		BlockType: b.Type,
		State:     StatePlaceholder,
		Width:     b.Width,
		Height:    b.Height,
	}
}
