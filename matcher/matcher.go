// Package matcher pairs blocks across two extractions.
//
// Matching runs in two greedy phases: an exact pass over normalized compare
// keys, then a fuzzy pass that accepts the first candidate scoring above the
// threshold. First-fit is deliberate — it keeps the pairing deterministic
// under a fixed traversal order, at the cost of not being a globally optimal
// assignment when several candidates qualify. Both phases are O(n·m) in the
// sizes of the not-yet-consumed sets; consumption itself is O(1) via
// tombstone flags.
package matcher

import (
	"github.com/tsawler/redline/blocks"
)

// DefaultThreshold is the similarity score a fuzzy candidate must exceed.
const DefaultThreshold = 0.6

// Scorer yields a similarity score in [0,1] between two compare keys.
// *similarity.Service satisfies it.
type Scorer interface {
	Score(a, b string) float64
}

// Kind classifies a match entry.
type Kind int

const (
	// Exact pairs blocks with identical type and compare key.
	Exact Kind = iota
	// Modified pairs blocks of the same type whose similarity exceeds the
	// threshold.
	Modified
	// DeletedOnly is a left block with no counterpart.
	DeletedOnly
	// AddedOnly is a right block with no counterpart.
	AddedOnly
)

func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Modified:
		return "modified"
	case DeletedOnly:
		return "deleted-only"
	case AddedOnly:
		return "added-only"
	default:
		return "unknown"
	}
}

// Pair holds two matched blocks.
type Pair struct {
	Left  blocks.Block
	Right blocks.Block
}

// Entry is one element of the match partition. Exactly one of Left/Right is
// nil for the single-sided kinds.
type Entry struct {
	Kind  Kind
	Left  *blocks.Block
	Right *blocks.Block
}

// Result partitions both inputs: every block appears in exactly one of the
// four sets, on its own side.
type Result struct {
	Exact          []Pair
	Modified       []Pair
	LeftUnmatched  []blocks.Block
	RightUnmatched []blocks.Block
}

// Entries flattens the partition into per-block entries, exact matches
// first, then modified pairs, deletions, and additions.
func (r Result) Entries() []Entry {
	out := make([]Entry, 0, len(r.Exact)+len(r.Modified)+len(r.LeftUnmatched)+len(r.RightUnmatched))
	for i := range r.Exact {
		out = append(out, Entry{Kind: Exact, Left: &r.Exact[i].Left, Right: &r.Exact[i].Right})
	}
	for i := range r.Modified {
		out = append(out, Entry{Kind: Modified, Left: &r.Modified[i].Left, Right: &r.Modified[i].Right})
	}
	for i := range r.LeftUnmatched {
		out = append(out, Entry{Kind: DeletedOnly, Left: &r.LeftUnmatched[i]})
	}
	for i := range r.RightUnmatched {
		out = append(out, Entry{Kind: AddedOnly, Right: &r.RightUnmatched[i]})
	}
	return out
}

// Match partitions the two block sequences. Blocks of different types never
// pair. A threshold of 0 or below falls back to DefaultThreshold.
func Match(left, right []blocks.Block, scorer Scorer, threshold float64) Result {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	leftUsed := make([]bool, len(left))
	rightUsed := make([]bool, len(right))

	var res Result

	// Phase 1: exact key matches, first fit in document order.
	for i := range left {
		for j := range right {
			if rightUsed[j] || right[j].Type != left[i].Type {
				continue
			}
			if right[j].CompareKey == left[i].CompareKey {
				res.Exact = append(res.Exact, Pair{Left: left[i], Right: right[j]})
				leftUsed[i] = true
				rightUsed[j] = true
				break
			}
		}
	}

	// Phase 2: first candidate above the threshold. Two empty keys would
	// trivially score 1.0, but equal empty keys were already consumed in
	// phase 1; the guard keeps a stray empty key from pairing fuzzily.
	for i := range left {
		if leftUsed[i] {
			continue
		}
		for j := range right {
			if rightUsed[j] || right[j].Type != left[i].Type {
				continue
			}
			if left[i].CompareKey == "" && right[j].CompareKey == "" {
				continue
			}
			if scorer.Score(left[i].CompareKey, right[j].CompareKey) > threshold {
				res.Modified = append(res.Modified, Pair{Left: left[i], Right: right[j]})
				leftUsed[i] = true
				rightUsed[j] = true
				break
			}
		}
	}

	for i := range left {
		if !leftUsed[i] {
			res.LeftUnmatched = append(res.LeftUnmatched, left[i])
		}
	}
	for j := range right {
		if !rightUsed[j] {
			res.RightUnmatched = append(res.RightUnmatched, right[j])
		}
	}

	return res
}
