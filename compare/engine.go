package compare

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/tsawler/redline/blocks"
	"github.com/tsawler/redline/document"
	"github.com/tsawler/redline/internal/logging"
	"github.com/tsawler/redline/matcher"
	"github.com/tsawler/redline/similarity"
)

// Differ is the similarity capability the engine consumes. It is satisfied
// by *similarity.Service; tests substitute fakes.
type Differ interface {
	Score(a, b string) float64
	WordDiff(a, b string) []similarity.Op
}

// Options configures an Engine.
type Options struct {
	// Threshold is the fuzzy-match similarity bound; candidates must score
	// strictly above it. Zero selects matcher.DefaultThreshold.
	Threshold float64
	// Strict makes internal invariant violations panic instead of degrading.
	// Intended for tests and debug builds.
	Strict bool
	// Logger receives diagnostics from the fail-open paths. Nil means quiet.
	Logger *slog.Logger
	// Extract configures block extraction for both documents.
	Extract blocks.ExtractOptions
}

// Engine runs comparisons. It is a pure, synchronous computation: it holds
// no state between calls and is safe for concurrent use as long as its
// Differ is reentrant. There is no built-in cancellation; a caller that
// supersedes an in-flight comparison should tag requests with a generation
// counter and discard results whose generation is stale before committing
// them to visible output.
type Engine struct {
	sim    Differ
	opts   Options
	logger *slog.Logger
}

// New builds an Engine around an explicitly provided similarity service.
func New(sim Differ, opts Options) *Engine {
	if opts.Threshold <= 0 {
		opts.Threshold = matcher.DefaultThreshold
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Engine{sim: sim, opts: opts, logger: logger}
}

// Compare produces the aligned result for two documents. It never fails past
// this boundary: any internal panic is logged and the inputs are echoed back
// unchanged with a zero summary ("never block review, show something").
// Retrying is pointless — the computation is deterministic — so nothing is
// retried either.
//
// Matching cost is worst-case quadratic in the unmatched set sizes
// (O(n·m) per phase); pathological block counts degrade in time, not in
// correctness, and no internal timeout cuts them short.
func (e *Engine) Compare(left, right *document.Document) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			if e.opts.Strict {
				panic(r)
			}
			e.logger.Error("comparison failed, echoing inputs unchanged", "panic", r)
			res = echo(left, right)
		}
	}()

	leftBlocks := blocks.ExtractWithOptions(left, e.opts.Extract)
	rightBlocks := blocks.ExtractWithOptions(right, e.opts.Extract)

	m := matcher.Match(leftBlocks, rightBlocks, e.sim, e.opts.Threshold)
	if err := checkPartition(m, len(leftBlocks), len(rightBlocks)); err != nil {
		// A non-partition is a defect in the matcher, not in the input.
		e.logger.Error("matcher invariant violated", "err", err)
		if e.opts.Strict {
			panic(err)
		}
	}

	entries, sum := e.classify(m)
	return assemble(entries, sum)
}

// assemble restores document order: entries sort by the left index when a
// left block exists, else the right index, with classification order
// breaking ties.
func assemble(entries []classified, sum Summary) Result {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})

	res := Result{
		Left:    make([]OutputNode, 0, len(entries)),
		Right:   make([]OutputNode, 0, len(entries)),
		Summary: sum,
	}
	for _, en := range entries {
		res.Left = append(res.Left, en.left)
		res.Right = append(res.Right, en.right)
	}
	return res
}

// checkPartition verifies that every block landed in exactly one match set.
func checkPartition(m matcher.Result, nLeft, nRight int) error {
	gotLeft := len(m.Exact) + len(m.Modified) + len(m.LeftUnmatched)
	if gotLeft != nLeft {
		return fmt.Errorf("left partition covers %d of %d blocks", gotLeft, nLeft)
	}
	gotRight := len(m.Exact) + len(m.Modified) + len(m.RightUnmatched)
	if gotRight != nRight {
		return fmt.Errorf("right partition covers %d of %d blocks", gotRight, nRight)
	}
	return nil
}

// echo is the degraded result: both trees pass through as single unchanged
// nodes, so the review still renders even when the engine cannot.
func echo(left, right *document.Document) Result {
	return Result{
		Left:     []OutputNode{echoNode(left)},
		Right:    []OutputNode{echoNode(right)},
		Degraded: true,
	}
}

func echoNode(doc *document.Document) OutputNode {
	n := OutputNode{
		BlockType: blocks.Paragraph,
		State:     StateUnchanged,
		Width:     blocks.MinWidth,
		Height:    blocks.MinHeight,
	}
	if doc != nil {
		body := doc.Body()
		n.Content = body.Text()
		n.Node = body.Clone()
	}
	return n
}
