// Package matcher applies literal and wildcard patterns to a text buffer,
// counting occurrences and removing the matched text.
//
// Patterns are applied one at a time and each application returns a new
// buffer, so the order patterns are applied in changes the result: a pattern
// can only match what earlier patterns left behind.
package matcher

import (
	"strings"

	"github.com/rcliao/wordfreq/internal/model"
)

// Apply runs one pattern against text and returns the remaining text and the
// number of occurrences found.
func Apply(text string, p model.Pattern) (string, int) {
	if p.Kind == model.Wildcard {
		return ApplyWildcard(text, p.Prefix, p.Suffix)
	}
	return ApplyLiteral(text, p.Text)
}

// ApplyLiteral removes every non-overlapping case-insensitive occurrence of
// literal from text in a single left-to-right pass.
func ApplyLiteral(text, literal string) (string, int) {
	if literal == "" {
		return text, 0
	}

	var b strings.Builder
	count, last := 0, 0
	for {
		start, end := IndexFold(text, literal, last)
		if start < 0 {
			break
		}
		if count == 0 {
			b.Grow(len(text))
		}
		b.WriteString(text[last:start])
		last = end
		count++
	}
	if count == 0 {
		return text, 0
	}
	b.WriteString(text[last:])
	return b.String(), count
}

// WildcardMatch is one prefix...suffix occurrence, as byte offsets into the
// text it was found in. The suffix span is empty when the match ran to the end
// of the text.
type WildcardMatch struct {
	Start      int
	InnerStart int
	InnerEnd   int
	End        int
}

// Inner returns the text captured between prefix and suffix.
func (m WildcardMatch) Inner(text string) string { return text[m.InnerStart:m.InnerEnd] }

// Tail returns the text that matched the suffix.
func (m WildcardMatch) Tail(text string) string { return text[m.InnerEnd:m.End] }

// FindWildcard finds, left to right, every non-overlapping occurrence of
// prefix followed by the shortest span that ends at the next suffix, or at the
// end of text when no suffix follows. Matching ignores case and crosses line
// breaks.
//
// An empty match is never reported twice at the same offset: after one, the
// next match starting there must consume at least one rune.
func FindWildcard(text, prefix, suffix string) []WildcardMatch {
	var matches []WildcardMatch
	pos, mustAdvance := 0, false
	for pos <= len(text) {
		m, ok := matchWildcard(text, prefix, suffix, pos, mustAdvance)
		if !ok {
			break
		}
		matches = append(matches, m)
		mustAdvance = m.End == m.Start
		pos = m.End
	}
	return matches
}

func matchWildcard(text, prefix, suffix string, pos int, mustAdvance bool) (WildcardMatch, bool) {
	for start := pos; start <= len(text); start = nextRune(text, start) {
		n, ok := HasPrefixFold(text[start:], prefix)
		if !ok {
			continue
		}
		innerStart := start + n
		for innerEnd := innerStart; innerEnd <= len(text); innerEnd = nextRune(text, innerEnd) {
			end := -1
			if sn, ok := HasPrefixFold(text[innerEnd:], suffix); ok {
				end = innerEnd + sn
			} else if innerEnd == len(text) {
				end = innerEnd
			}
			if end < 0 || (mustAdvance && start == pos && end == pos) {
				continue
			}
			return WildcardMatch{Start: start, InnerStart: innerStart, InnerEnd: innerEnd, End: end}, true
		}
	}
	return WildcardMatch{}, false
}

// ApplyWildcard counts prefix~suffix occurrences and removes their captured
// text. Matches are located on the incoming text; removal is then done by
// value on the evolving buffer. For each match the inner span is removed
// 1+k times, where k counts prefix inside the trimmed inner span, and the
// suffix span likewise with the suffix. Because removal is by value, identical
// text elsewhere in the buffer is removed too. The prefix itself is left in
// place.
func ApplyWildcard(text, prefix, suffix string) (string, int) {
	matches := FindWildcard(text, prefix, suffix)
	out := text
	for _, m := range matches {
		inner, tail := m.Inner(text), m.Tail(text)
		out = removeN(out, inner, 1+CountFold(strings.TrimSpace(inner), prefix))
		out = removeN(out, tail, 1+CountFold(strings.TrimSpace(tail), suffix))
	}
	return out, len(matches)
}

func removeN(s, old string, n int) string {
	if old == "" {
		return s
	}
	return strings.Replace(s, old, "", n)
}
