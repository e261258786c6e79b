package matcher

import (
	"unicode"
	"unicode/utf8"
)

// equalFoldRune reports whether a and b are equal under simple Unicode case
// folding.
func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	if a > b {
		a, b = b, a
	}
	if b < utf8.RuneSelf {
		return 'A' <= a && a <= 'Z' && b == a+'a'-'A'
	}
	r := unicode.SimpleFold(a)
	for r != a && r < b {
		r = unicode.SimpleFold(r)
	}
	return r == b
}

// HasPrefixFold reports whether s starts with prefix, ignoring case, and
// returns the number of bytes of s the prefix covered. The byte length can
// differ from len(prefix) when folding pairs runes of different widths.
func HasPrefixFold(s, prefix string) (int, bool) {
	i := 0
	for _, pr := range prefix {
		if i >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if !equalFoldRune(sr, pr) {
			return 0, false
		}
		i += size
	}
	return i, true
}

// IndexFold returns the byte span of the first case-insensitive occurrence of
// substr in s at or after from, or -1, -1. An empty substr matches at from.
func IndexFold(s, substr string, from int) (int, int) {
	for i := from; i <= len(s); i = nextRune(s, i) {
		if n, ok := HasPrefixFold(s[i:], substr); ok {
			return i, i + n
		}
	}
	return -1, -1
}

// CountFold counts non-overlapping case-insensitive occurrences of substr in
// s. An empty substr counts once per rune boundary, i.e. runes+1.
func CountFold(s, substr string) int {
	if substr == "" {
		return utf8.RuneCountInString(s) + 1
	}
	n := 0
	for pos := 0; ; n++ {
		_, end := IndexFold(s, substr, pos)
		if end < 0 {
			return n
		}
		pos = end
	}
}

// nextRune returns the byte offset of the rune after offset i. Past the end of
// s it returns len(s)+1 so scan loops terminate.
func nextRune(s string, i int) int {
	if i >= len(s) {
		return len(s) + 1
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return i + size
}
