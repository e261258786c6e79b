// Package tokenizer extracts residual words from text. It splits on runs of
// word characters (letters, numbers and underscore), lower-cases each token,
// and drops any token that contains a character from an excluded set.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rcliao/wordfreq/internal/table"
)

// Exclusion is a named character set. A token containing any character of
// the set is discarded whole.
type Exclusion struct {
	Name  string
	Table *unicode.RangeTable
}

// HangulRange covers Hangul compatibility jamo and precomposed syllables.
var HangulRange = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3131, Hi: 0x3163, Stride: 1},
		{Lo: 0xAC00, Hi: 0xD7A3, Stride: 1},
	},
}

var (
	Hangul       = Exclusion{Name: "hangul", Table: HangulRange}
	HangulScript = Exclusion{Name: "hangul-script", Table: unicode.Hangul}
	Digits       = Exclusion{Name: "digits", Table: unicode.Nd}
)

var exclusions = map[string]Exclusion{
	Hangul.Name:       Hangul,
	HangulScript.Name: HangulScript,
	Digits.Name:       Digits,
}

// ParseExclusions resolves exclusion names such as "hangul" and "digits".
func ParseExclusions(names []string) ([]Exclusion, error) {
	var out []Exclusion
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || name == "none" {
			continue
		}
		ex, ok := exclusions[name]
		if !ok {
			return nil, fmt.Errorf("unknown exclusion %q (valid: hangul, hangul-script, digits, none)", name)
		}
		out = append(out, ex)
	}
	return out, nil
}

// Options configures tokenization.
type Options struct {
	Exclude []Exclusion
}

// DefaultOptions excludes Hangul tokens and tokens containing digits.
func DefaultOptions() Options {
	return Options{Exclude: []Exclusion{Hangul, Digits}}
}

// Stats describes one tokenization pass.
type Stats struct {
	Tokens   int `json:"tokens"`
	Excluded int `json:"excluded"`
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// Words splits text into raw word tokens, preserving case.
func Words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})
}

// Tokenize returns the lower-cased tokens of text that survive the
// exclusions, in text order.
func Tokenize(text string, opts Options) ([]string, Stats) {
	lower := cases.Lower(language.Und)
	words := Words(text)
	tokens := make([]string, 0, len(words))
	var st Stats
	for _, word := range words {
		if excluded(word, opts.Exclude) {
			st.Excluded++
			continue
		}
		tokens = append(tokens, lower.String(word))
	}
	st.Tokens = len(tokens)
	return tokens, st
}

// Count tokenizes text and tallies the tokens in first-seen order.
func Count(text string, opts Options) (*table.Table, Stats) {
	tokens, st := Tokenize(text, opts)
	t := table.New()
	for _, tok := range tokens {
		t.Add(tok, 1)
	}
	return t, st
}

func excluded(word string, exclude []Exclusion) bool {
	if len(exclude) == 0 {
		return false
	}
	for _, r := range word {
		for _, ex := range exclude {
			if unicode.Is(ex.Table, r) {
				return true
			}
		}
	}
	return false
}
