// Package redline provides a fluent API for comparing two rendered versions
// of a structured document and producing aligned, annotated views of the
// differences.
//
// Basic usage:
//
//	result, err := redline.Open("old.html", "new.html").Compare()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Printf("%d added, %d deleted, %d changed\n",
//	    result.Summary.Additions, result.Summary.Deletions, result.Summary.Changes)
//
// With options:
//
//	result, err := redline.Open("old.md", "new.md").
//	    Threshold(0.75).
//	    ParagraphTags("h1", "h2", "li").
//	    Compare()
//
// For advanced use cases, the lower-level compare package is also available.
package redline

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tsawler/redline/blocks"
	"github.com/tsawler/redline/compare"
	"github.com/tsawler/redline/document"
	"github.com/tsawler/redline/format"
	"github.com/tsawler/redline/similarity"
)

// Comparer provides a fluent interface for configuring and running one
// comparison. Each configuration method returns a new Comparer instance,
// making it safe for concurrent use and allowing method chaining.
type Comparer struct {
	// Sources (paths or already-parsed documents)
	leftPath, rightPath string
	leftDoc, rightDoc   *document.Document

	// Configuration
	options CompareOptions

	// Accumulated error (fail-fast)
	err error
}

// Open prepares a comparison of two document files. Format is detected per
// file from the extension, falling back to content sniffing.
func Open(leftPath, rightPath string) *Comparer {
	return &Comparer{
		leftPath:  leftPath,
		rightPath: rightPath,
		options:   defaultOptions(),
	}
}

// FromReaders prepares a comparison of two HTML streams.
func FromReaders(left, right io.Reader) *Comparer {
	c := &Comparer{options: defaultOptions()}
	c.leftDoc, c.err = document.OpenReader(left)
	if c.err == nil {
		c.rightDoc, c.err = document.OpenReader(right)
	}
	return c
}

// FromDocuments prepares a comparison of two already-parsed documents.
func FromDocuments(left, right *document.Document) *Comparer {
	return &Comparer{
		leftDoc:  left,
		rightDoc: right,
		options:  defaultOptions(),
	}
}

// clone creates a shallow copy of the Comparer with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (c *Comparer) clone() *Comparer {
	return &Comparer{
		leftPath:  c.leftPath,
		rightPath: c.rightPath,
		leftDoc:   c.leftDoc,
		rightDoc:  c.rightDoc,
		options:   c.options.clone(),
		err:       c.err,
	}
}

// Threshold sets the similarity score a fuzzy match must exceed (0 < t < 1).
func (c *Comparer) Threshold(t float64) *Comparer {
	newC := c.clone()
	if t <= 0 || t >= 1 {
		if newC.err == nil {
			newC.err = fmt.Errorf("threshold %v out of range (0,1)", t)
		}
		return newC
	}
	newC.options.threshold = t
	return newC
}

// ParagraphTags widens the set of tags treated as paragraph blocks beyond
// the default <p> (e.g. "h1".."h6", "li", "blockquote").
func (c *Comparer) ParagraphTags(tags ...string) *Comparer {
	newC := c.clone()
	newC.options.paragraphTags = append(newC.options.paragraphTags, tags...)
	return newC
}

// Strict makes internal invariant violations panic instead of degrading to
// the unchanged echo. Intended for tests and debug builds.
func (c *Comparer) Strict() *Comparer {
	newC := c.clone()
	newC.options.strict = true
	return newC
}

// Logger routes engine diagnostics (fail-open events) to the given logger.
func (c *Comparer) Logger(l *slog.Logger) *Comparer {
	newC := c.clone()
	newC.options.logger = l
	return newC
}

// Compare runs the comparison. Errors are limited to loading the inputs:
// once both documents parse, the engine itself never fails, degrading to an
// unchanged echo on internal errors.
func (c *Comparer) Compare() (*compare.Result, error) {
	if c.err != nil {
		return nil, c.err
	}

	left, right := c.leftDoc, c.rightDoc
	var err error
	if left == nil {
		if left, err = loadFile(c.leftPath); err != nil {
			return nil, fmt.Errorf("loading left document: %w", err)
		}
	}
	if right == nil {
		if right, err = loadFile(c.rightPath); err != nil {
			return nil, fmt.Errorf("loading right document: %w", err)
		}
	}

	engine := compare.New(similarity.New(), compare.Options{
		Threshold: c.options.threshold,
		Strict:    c.options.strict,
		Logger:    c.options.logger,
		Extract:   blocks.ExtractOptions{ParagraphTags: c.options.paragraphTags},
	})

	res := engine.Compare(left, right)
	return &res, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	result := redline.Must(redline.Open("a.html", "b.html").Compare())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// loadFile reads and parses one document, detecting HTML vs Markdown from
// the filename and, failing that, from the content itself.
func loadFile(path string) (*document.Document, error) {
	if path == "" {
		return nil, fmt.Errorf("no filename specified")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f := format.Detect(path)
	if f == format.Unknown {
		f = format.DetectFromContent(data)
	}

	switch f {
	case format.Markdown:
		return document.FromMarkdown(data)
	case format.HTML:
		return document.OpenReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unrecognized document format: %s", path)
	}
}
