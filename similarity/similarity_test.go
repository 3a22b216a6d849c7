package similarity

import (
	"strings"
	"testing"
)

func TestScore_EmptyRules(t *testing.T) {
	s := New()

	if got := s.Score("", ""); got != 1.0 {
		t.Errorf("Score(\"\", \"\") = %v, want 1.0", got)
	}
	if got := s.Score("", "text"); got != 0.0 {
		t.Errorf("Score(\"\", \"text\") = %v, want 0.0", got)
	}
	if got := s.Score("text", ""); got != 0.0 {
		t.Errorf("Score(\"text\", \"\") = %v, want 0.0", got)
	}
}

func TestScore_Identical(t *testing.T) {
	s := New()
	if got := s.Score("the same text", "the same text"); got != 1.0 {
		t.Errorf("Score(identical) = %v, want 1.0", got)
	}
}

func TestScore_Disjoint(t *testing.T) {
	s := New()
	got := s.Score("aaaa", "zzzz")
	if got != 0.0 {
		t.Errorf("Score(disjoint) = %v, want 0.0", got)
	}
}

func TestScore_SmallEdit(t *testing.T) {
	s := New()
	// "The cat sat" vs "The dog sat": 3 of 11 characters replaced.
	got := s.Score("the cat sat", "the dog sat")
	if got <= 0.6 {
		t.Errorf("Score = %v, want > 0.6 for a small edit", got)
	}
	if got >= 1.0 {
		t.Errorf("Score = %v, want < 1.0 for differing strings", got)
	}
}

func TestScore_Range(t *testing.T) {
	s := New()
	pairs := [][2]string{
		{"a", "abcdefghij"},
		{"hello world", "world hello"},
		{"x", "y"},
		{strings.Repeat("ab", 50), strings.Repeat("ba", 50)},
	}
	for _, p := range pairs {
		got := s.Score(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Score(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestScore_MultiByte(t *testing.T) {
	s := New()
	// One rune of four changed; byte-based length would deflate the score.
	got := s.Score("日本語だ", "日本語で")
	if got != 0.75 {
		t.Errorf("Score = %v, want 0.75 (rune-based lengths)", got)
	}
}

func TestWordDiff_RoundTrip(t *testing.T) {
	s := New()
	left := "The cat sat on the mat"
	right := "The dog sat on a mat"

	ops := s.WordDiff(left, right)
	if len(ops) == 0 {
		t.Fatal("WordDiff returned no ops")
	}

	var rebuiltLeft, rebuiltRight strings.Builder
	for _, op := range ops {
		if op.Kind == OpEqual || op.Kind == OpDelete {
			rebuiltLeft.WriteString(op.Text)
		}
		if op.Kind == OpEqual || op.Kind == OpInsert {
			rebuiltRight.WriteString(op.Text)
		}
	}
	if rebuiltLeft.String() != left {
		t.Errorf("equal+delete spans = %q, want %q", rebuiltLeft.String(), left)
	}
	if rebuiltRight.String() != right {
		t.Errorf("equal+insert spans = %q, want %q", rebuiltRight.String(), right)
	}
}

func TestWordDiff_MarksChangedWords(t *testing.T) {
	s := New()
	ops := s.WordDiff("The cat sat", "The dog sat")

	var deleted, inserted string
	for _, op := range ops {
		switch op.Kind {
		case OpDelete:
			deleted += op.Text
		case OpInsert:
			inserted += op.Text
		}
	}
	if !strings.Contains(deleted, "cat") {
		t.Errorf("deleted spans = %q, want 'cat' marked", deleted)
	}
	if !strings.Contains(inserted, "dog") {
		t.Errorf("inserted spans = %q, want 'dog' marked", inserted)
	}
}

func TestWordDiff_EqualStrings(t *testing.T) {
	s := New()
	ops := s.WordDiff("same", "same")
	if len(ops) != 1 || ops[0].Kind != OpEqual || ops[0].Text != "same" {
		t.Errorf("WordDiff(equal) = %+v, want single equal op", ops)
	}
}

func TestOpKind_Names(t *testing.T) {
	cases := []struct {
		kind OpKind
		want string
	}{
		{OpEqual, "equal"},
		{OpInsert, "insert"},
		{OpDelete, "delete"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("%d.String() = %q, want %q", c.kind, got, c.want)
		}
	}
}
