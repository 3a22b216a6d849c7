// Package similarity scores and diffs block text.
//
// It wraps the diff-match-patch primitive behind the two operations the
// comparison engine needs: a normalized similarity score in [0,1] derived
// from the Levenshtein distance implied by the diff, and a word-level diff
// with semantic cleanup applied so fragments merge into human-meaningful
// spans.
package similarity

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// OpKind is the kind of a diff operation.
type OpKind int

const (
	// OpEqual marks a span present in both strings.
	OpEqual OpKind = iota
	// OpInsert marks a span present only in the right string.
	OpInsert
	// OpDelete marks a span present only in the left string.
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "equal"
	}
}

// MarshalText implements encoding.TextMarshaler so op kinds serialize as
// their names.
func (k OpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Op is one tagged span of a diff. Concatenating the Text of all Equal and
// Delete ops reconstructs the left string; Equal and Insert ops reconstruct
// the right string.
type Op struct {
	Kind OpKind `json:"kind"`
	Text string `json:"text"`
}

// Service produces similarity scores and word-level diffs. A Service holds
// no per-call state and is safe for concurrent use; construct one explicitly
// and pass it to the engine rather than sharing a hidden global.
type Service struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// New returns a Service with the diff deadline disabled: the engine enforces
// no internal timeouts, so the primitive must not silently truncate either.
func New() *Service {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &Service{dmp: dmp}
}

// Score returns a similarity score in [0,1]: 1 when both strings are empty,
// 0 when exactly one is empty, otherwise max(0, 1 - editDistance/maxLen)
// with lengths counted in runes. A failure inside the diff primitive is
// reported as 0 so a pathological pair stays unmatched instead of aborting
// the whole comparison.
func (s *Service) Score(a, b string) (score float64) {
	defer func() {
		if recover() != nil {
			score = 0
		}
	}()

	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	diffs := s.dmp.DiffMain(a, b, false)
	dist := s.dmp.DiffLevenshtein(diffs)

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}

	score = 1 - float64(dist)/float64(maxLen)
	if score < 0 {
		score = 0
	}
	return score
}

// WordDiff returns the diff between a and b as tagged spans, with semantic
// cleanup applied. If the primitive fails, the result degrades to a full
// delete of a followed by a full insert of b, which still satisfies the
// reconstruction invariants.
func (s *Service) WordDiff(a, b string) (ops []Op) {
	defer func() {
		if recover() != nil {
			ops = fallbackOps(a, b)
		}
	}()

	diffs := s.dmp.DiffMain(a, b, false)
	diffs = s.dmp.DiffCleanupSemantic(diffs)

	ops = make([]Op, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		ops = append(ops, Op{Kind: opKind(d.Type), Text: d.Text})
	}
	return ops
}

func fallbackOps(a, b string) []Op {
	var ops []Op
	if a != "" {
		ops = append(ops, Op{Kind: OpDelete, Text: a})
	}
	if b != "" {
		ops = append(ops, Op{Kind: OpInsert, Text: b})
	}
	return ops
}

func opKind(t diffmatchpatch.Operation) OpKind {
	switch t {
	case diffmatchpatch.DiffInsert:
		return OpInsert
	case diffmatchpatch.DiffDelete:
		return OpDelete
	default:
		return OpEqual
	}
}
