// Package blocks extracts comparable blocks from a document tree.
//
// A block is one structural unit — paragraph, table, or image — taken in
// traversal order. Blocks carry two textual forms: Content, the human-visible
// text used for word-level diffing, and CompareKey, the normalized form used
// for matching.
package blocks

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/tsawler/redline/document"
)

// Type identifies the kind of block.
type Type int

const (
	// Unknown indicates an unrecognized block type.
	Unknown Type = iota
	// Paragraph is a text block.
	Paragraph
	// Table is a tabular block, compared as an opaque unit.
	Table
	// Image is an image block, keyed by its resource locator.
	Image
)

func (t Type) String() string {
	switch t {
	case Paragraph:
		return "paragraph"
	case Table:
		return "table"
	case Image:
		return "image"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so block types serialize
// as their names.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Block is one extracted structural unit. Blocks are immutable after
// extraction.
type Block struct {
	// Type is the block kind.
	Type Type
	// Index is the block's position in source order, starting at 0.
	Index int
	// Content is the human-visible text (pre-case-folding for paragraphs).
	Content string
	// CompareKey is the normalized form used for matching.
	CompareKey string
	// Node references the source element.
	Node *document.Node
	// Width and Height are minimum render dimensions, used only to size
	// placeholders on the opposite side.
	Width  int
	Height int
	// ID is unique within one extraction: type, index, and a content hash.
	ID string
}

// blockID derives a content-addressed identifier for a block. The hash only
// needs to be stable and deterministic, not cryptographically meaningful;
// blake3 is what the rest of the toolchain already links.
func blockID(t Type, index int, compareKey string) string {
	sum := blake3.Sum256([]byte(compareKey))
	return fmt.Sprintf("%s-%d-%s", t, index, hex.EncodeToString(sum[:4]))
}
