package redline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/redline/compare"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestOpen_CompareHTMLFiles(t *testing.T) {
	left := writeTemp(t, "old.html", `<html><body><p>Hello</p></body></html>`)
	right := writeTemp(t, "new.html", `<html><body><p>Hello</p><p>World</p></body></html>`)

	res, err := Open(left, right).Strict().Compare()
	if err != nil {
		t.Fatalf("Compare() failed: %v", err)
	}

	want := compare.Summary{Additions: 1}
	if res.Summary != want {
		t.Errorf("Summary = %+v, want %+v", res.Summary, want)
	}
}

func TestOpen_CompareMarkdownFiles(t *testing.T) {
	left := writeTemp(t, "old.md", "Shared paragraph.\n\nThe cat sat on the mat.\n")
	right := writeTemp(t, "new.md", "Shared paragraph.\n\nThe dog sat on the mat.\n")

	res, err := Open(left, right).Strict().Compare()
	if err != nil {
		t.Fatalf("Compare() failed: %v", err)
	}

	want := compare.Summary{Changes: 1}
	if res.Summary != want {
		t.Errorf("Summary = %+v, want %+v", res.Summary, want)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open("/nonexistent/a.html", "/nonexistent/b.html").Compare()
	if err == nil {
		t.Error("Compare() expected error for nonexistent files")
	}
}

func TestFromReaders(t *testing.T) {
	res, err := FromReaders(
		strings.NewReader(`<html><body><p>one</p><p>two</p></body></html>`),
		strings.NewReader(`<html><body><p>one</p></body></html>`),
	).Compare()
	if err != nil {
		t.Fatalf("Compare() failed: %v", err)
	}

	want := compare.Summary{Deletions: 1}
	if res.Summary != want {
		t.Errorf("Summary = %+v, want %+v", res.Summary, want)
	}
}

func TestThreshold_Validation(t *testing.T) {
	_, err := FromReaders(
		strings.NewReader(`<html><body></body></html>`),
		strings.NewReader(`<html><body></body></html>`),
	).Threshold(1.5).Compare()
	if err == nil {
		t.Error("Threshold(1.5) should surface a configuration error")
	}
}

func TestThreshold_ChangesOutcome(t *testing.T) {
	leftHTML := `<html><body><p>aaaaaaaaab</p></body></html>`
	rightHTML := `<html><body><p>aaaaaaaaaz</p></body></html>`

	loose, err := FromReaders(strings.NewReader(leftHTML), strings.NewReader(rightHTML)).Compare()
	if err != nil {
		t.Fatalf("Compare() failed: %v", err)
	}
	if loose.Summary.Changes != 1 {
		t.Errorf("default threshold: Changes = %d, want 1", loose.Summary.Changes)
	}

	tight, err := FromReaders(strings.NewReader(leftHTML), strings.NewReader(rightHTML)).
		Threshold(0.95).Compare()
	if err != nil {
		t.Fatalf("Compare() failed: %v", err)
	}
	if tight.Summary.Changes != 0 {
		t.Errorf("tight threshold: Changes = %d, want 0", tight.Summary.Changes)
	}
}

func TestChaining_DoesNotMutateReceiver(t *testing.T) {
	base := Open("a.html", "b.html")
	_ = base.Threshold(0.9).ParagraphTags("h1").Strict()

	if base.options.threshold != defaultOptions().threshold {
		t.Error("chaining mutated the original Comparer's threshold")
	}
	if len(base.options.paragraphTags) != 0 {
		t.Error("chaining mutated the original Comparer's tag set")
	}
	if base.options.strict {
		t.Error("chaining mutated the original Comparer's strict flag")
	}
}

func TestParagraphTags_FlowThrough(t *testing.T) {
	res, err := FromReaders(
		strings.NewReader(`<html><body><h2>Old Title</h2></body></html>`),
		strings.NewReader(`<html><body><h2>Old Title</h2><h2>Another</h2></body></html>`),
	).ParagraphTags("h2").Compare()
	if err != nil {
		t.Fatalf("Compare() failed: %v", err)
	}

	want := compare.Summary{Additions: 1}
	if res.Summary != want {
		t.Errorf("Summary = %+v, want %+v", res.Summary, want)
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(Open("/nonexistent/a.html", "/nonexistent/b.html").Compare())
}
