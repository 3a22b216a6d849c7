package render

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/tsawler/redline/compare"
	"github.com/tsawler/redline/document"
	"github.com/tsawler/redline/similarity"
)

func result(t *testing.T, leftHTML, rightHTML string) *compare.Result {
	t.Helper()
	left, err := document.OpenReader(strings.NewReader(leftHTML))
	if err != nil {
		t.Fatalf("parsing left: %v", err)
	}
	right, err := document.OpenReader(strings.NewReader(rightHTML))
	if err != nil {
		t.Fatalf("parsing right: %v", err)
	}
	res := compare.New(similarity.New(), compare.Options{Strict: true}).Compare(left, right)
	return &res
}

func TestHTML_ParsesAndMarksChanges(t *testing.T) {
	res := result(t,
		`<html><body><p>The cat sat</p><p>gone soon</p></body></html>`,
		`<html><body><p>The dog sat</p><p>brand new</p></body></html>`,
	)

	var buf bytes.Buffer
	if err := HTML(&buf, res); err != nil {
		t.Fatalf("HTML() failed: %v", err)
	}
	out := buf.String()

	if _, err := html.Parse(strings.NewReader(out)); err != nil {
		t.Fatalf("output is not parseable HTML: %v", err)
	}
	if !strings.Contains(out, "<del>") || !strings.Contains(out, "<ins>") {
		t.Error("modified paragraph should render del/ins marks")
	}
	if !strings.Contains(out, "rl-modified") {
		t.Error("missing modified block class")
	}
}

func TestHTML_PlaceholderSized(t *testing.T) {
	res := result(t,
		`<html><body></body></html>`,
		`<html><body><img src="x.png" width="800" height="600"></body></html>`,
	)

	var buf bytes.Buffer
	if err := HTML(&buf, res); err != nil {
		t.Fatalf("HTML() failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "rl-placeholder") {
		t.Error("missing placeholder block")
	}
	if !strings.Contains(out, "min-width:800px") || !strings.Contains(out, "min-height:600px") {
		t.Errorf("placeholder not sized to the missing block: %s", out)
	}
	if !strings.Contains(out, `src="x.png"`) {
		t.Error("added image should render on the right pane")
	}
}

func TestHTML_SummaryLine(t *testing.T) {
	res := result(t,
		`<html><body><p>one</p></body></html>`,
		`<html><body><p>one</p><p>two</p></body></html>`,
	)

	var buf bytes.Buffer
	if err := HTML(&buf, res); err != nil {
		t.Fatalf("HTML() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "1 added, 0 deleted, 0 changed") {
		t.Errorf("summary line missing: %s", buf.String())
	}
}

func TestHTML_RenderTwice(t *testing.T) {
	res := result(t,
		`<html><body><table><tr><td>a</td></tr></table></body></html>`,
		`<html><body><table><tr><td>a</td></tr></table></body></html>`,
	)

	var first, second bytes.Buffer
	if err := HTML(&first, res); err != nil {
		t.Fatalf("first render failed: %v", err)
	}
	if err := HTML(&second, res); err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	if first.String() != second.String() {
		t.Error("rendering the same result twice should be identical")
	}
}
