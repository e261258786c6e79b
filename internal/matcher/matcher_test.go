package matcher

import (
	"testing"

	"github.com/rcliao/wordfreq/internal/model"
	"github.com/rcliao/wordfreq/internal/pattern"
)

func TestApplyLiteral_NoMatchLeavesTextUnchanged(t *testing.T) {
	text := "The quick brown fox"
	got, n := ApplyLiteral(text, "lazy dog")
	if n != 0 {
		t.Errorf("expected count 0, got %d", n)
	}
	if got != text {
		t.Errorf("expected unchanged text, got %q", got)
	}
}

func TestApplyLiteral_CaseInsensitiveRemovesAll(t *testing.T) {
	text := "Deep Learning and deep learning and DEEP LEARNING."
	got, n := ApplyLiteral(text, "deep learning")
	if n != 3 {
		t.Errorf("expected count 3, got %d", n)
	}
	if want := " and  and ."; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if start, _ := IndexFold(got, "deep learning", 0); start >= 0 {
		t.Errorf("pattern still present in %q", got)
	}
}

func TestApplyLiteral_NonOverlappingSinglePass(t *testing.T) {
	got, n := ApplyLiteral("aaaa", "aa")
	if n != 2 || got != "" {
		t.Errorf("expected 2 and empty text, got %d and %q", n, got)
	}

	// Removal does not rescan the joined text.
	got, n = ApplyLiteral("aabb", "ab")
	if n != 1 || got != "ab" {
		t.Errorf("expected 1 and %q, got %d and %q", "ab", n, got)
	}
}

func TestApplyLiteral_Empty(t *testing.T) {
	got, n := ApplyLiteral("text", "")
	if n != 0 || got != "text" {
		t.Errorf("expected no-op, got %d and %q", n, got)
	}
}

func TestApplyWildcard_SingleSpan(t *testing.T) {
	got, n := ApplyWildcard("foo <<inner>> bar", "<<", ">>")
	if n != 1 {
		t.Errorf("expected count 1, got %d", n)
	}
	if want := "foo << bar"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestApplyWildcard_StartMiddleEnd(t *testing.T) {
	got, n := ApplyWildcard("start X middle Y end", "X", "Y")
	if n != 1 {
		t.Errorf("expected count 1, got %d", n)
	}
	if want := "start X end"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestApplyWildcard_NoSuffixRunsToEnd(t *testing.T) {
	got, n := ApplyWildcard("keep [drop this\nand this", "[", "]")
	if n != 1 {
		t.Errorf("expected count 1, got %d", n)
	}
	if want := "keep ["; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestApplyWildcard_CrossesLinesAndIgnoresCase(t *testing.T) {
	got, n := ApplyWildcard("START x\ny STOP after", "start", "stop")
	if n != 1 {
		t.Errorf("expected count 1, got %d", n)
	}
	if want := "START after"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestApplyWildcard_MultipleMatches(t *testing.T) {
	got, n := ApplyWildcard("a<1>b<2>c", "<", ">")
	if n != 2 {
		t.Errorf("expected count 2, got %d", n)
	}
	if want := "a<b<c"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestApplyWildcard_PrefixInsideSpanRemovedAgain(t *testing.T) {
	// The first inner span "x (y" contains the prefix once, so it is removed
	// twice, which also consumes the second match's identical span.
	got, n := ApplyWildcard("(x (y) (x (y)", "(", ")")
	if n != 2 {
		t.Errorf("expected count 2, got %d", n)
	}
	if want := "( ("; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestApplyWildcard_RemovesByValue(t *testing.T) {
	// The captured "dup" is removed at its first occurrence in the buffer,
	// which is outside the brackets.
	got, n := ApplyWildcard("dup x [dup]", "[", "]")
	if n != 1 {
		t.Errorf("expected count 1, got %d", n)
	}
	if want := " x [dup"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestApplyWildcard_EmptySuffixOnlyCounts(t *testing.T) {
	text := "head one head two"
	got, n := ApplyWildcard(text, "head", "")
	if n != 2 {
		t.Errorf("expected count 2, got %d", n)
	}
	if got != text {
		t.Errorf("expected unchanged text, got %q", got)
	}
}

func TestApplyWildcard_NoPrefixMatch(t *testing.T) {
	text := "nothing to see"
	got, n := ApplyWildcard(text, "<", ">")
	if n != 0 || got != text {
		t.Errorf("expected no-op, got %d and %q", n, got)
	}
}

func TestFindWildcard_EmptyPrefix(t *testing.T) {
	matches := FindWildcard("aBc", "", "b")
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	text := "aBc"
	if matches[0].Inner(text) != "a" || matches[0].Tail(text) != "B" {
		t.Errorf("unexpected first match %+v", matches[0])
	}
	if matches[1].Inner(text) != "c" || matches[1].Tail(text) != "" {
		t.Errorf("unexpected second match %+v", matches[1])
	}
	if matches[2].Start != 3 || matches[2].End != 3 {
		t.Errorf("expected trailing empty match, got %+v", matches[2])
	}
}

func TestApply_DispatchesOnKind(t *testing.T) {
	text := "one <two> three"
	got, n := Apply(text, pattern.ParseLine("<~>"))
	if n != 1 || got != "one < three" {
		t.Errorf("wildcard: got %d and %q", n, got)
	}
	got, n = Apply(text, model.Pattern{Raw: "one", Kind: model.Literal, Text: "one"})
	if n != 1 || got != " <two> three" {
		t.Errorf("literal: got %d and %q", n, got)
	}
}
