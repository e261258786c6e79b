// Package model defines the core word-frequency data types.
package model

// PatternKind distinguishes literal phrases from wildcard-bounded ones.
type PatternKind string

const (
	Literal  PatternKind = "literal"
	Wildcard PatternKind = "wildcard"
)

// WildcardMark separates the prefix and suffix of a wildcard pattern.
const WildcardMark = "~"

// Pattern is one parsed settings line.
type Pattern struct {
	Raw    string      `json:"raw"`
	Kind   PatternKind `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Prefix string      `json:"prefix,omitempty"`
	Suffix string      `json:"suffix,omitempty"`
}

// Entry is one row of the final frequency table.
type Entry struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}
