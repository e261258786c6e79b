// Package counter runs the word-frequency pipeline: patterns are applied in
// order to a shared text buffer, the residue is tokenized, and the two count
// tables are merged.
package counter

import (
	"errors"

	"golang.org/x/text/unicode/norm"

	"github.com/rcliao/wordfreq/internal/logger"
	"github.com/rcliao/wordfreq/internal/matcher"
	"github.com/rcliao/wordfreq/internal/model"
	"github.com/rcliao/wordfreq/internal/table"
	"github.com/rcliao/wordfreq/internal/tokenizer"
)

// ErrNoInput is returned when no text document was supplied.
var ErrNoInput = errors.New("no input text")

// Options configures a count run.
type Options struct {
	Tokenizer tokenizer.Options
	// Normalize applies NFC to the text and pattern bodies before matching.
	// Pattern raw text, used as the output key, is never altered.
	Normalize bool
}

// DefaultOptions returns the canonical exclusions. The text is counted as
// read, without normalization.
func DefaultOptions() Options {
	return Options{Tokenizer: tokenizer.DefaultOptions()}
}

// PatternCount is the count a single pattern produced.
type PatternCount struct {
	Pattern model.Pattern `json:"pattern"`
	Count   int           `json:"count"`
}

// Result is the outcome of one run.
type Result struct {
	Final    *table.Table
	Words    *table.Table
	Patterns *table.Table
	// Applied lists each pattern application in order, duplicates included.
	Applied  []PatternCount
	Residual string
	Stats    tokenizer.Stats
}

// Count applies patterns to text in order, tokenizes what is left and merges
// the counts. Each pattern sees the buffer left by the one before it.
//
// A literal pattern's count is set, so a repeated literal line keeps the last
// application's count; a repeated wildcard line accumulates.
func Count(text string, patterns []model.Pattern, opts Options) *Result {
	log := logger.WithComponent("counter")
	if opts.Normalize {
		text = norm.NFC.String(text)
	}

	buf := text
	res := &Result{Patterns: table.New()}
	for _, p := range patterns {
		var n int
		buf, n = matcher.Apply(buf, normalizePattern(p, opts.Normalize))
		if p.Kind == model.Wildcard {
			res.Patterns.Add(p.Raw, n)
		} else {
			res.Patterns.Set(p.Raw, n)
		}
		res.Applied = append(res.Applied, PatternCount{Pattern: p, Count: n})
		log.Debug("pattern applied", "pattern", p.Raw, "kind", p.Kind, "count", n, "remaining_bytes", len(buf))
	}

	res.Residual = buf
	res.Words, res.Stats = tokenizer.Count(buf, opts.Tokenizer)
	res.Final = Merge(res.Words, res.Patterns)
	log.Debug("count complete", "terms", res.Final.Len(), "tokens", res.Stats.Tokens, "excluded", res.Stats.Excluded)
	return res
}

// Merge starts from the word counts and overwrites, not adds, every pattern
// key. Existing keys keep their position; new keys are appended in pattern
// order.
func Merge(words, patterns *table.Table) *table.Table {
	out := words.Clone()
	for _, k := range patterns.Keys() {
		n, _ := patterns.Get(k)
		out.Set(k, n)
	}
	return out
}

func normalizePattern(p model.Pattern, on bool) model.Pattern {
	if !on {
		return p
	}
	p.Text = norm.NFC.String(p.Text)
	p.Prefix = norm.NFC.String(p.Prefix)
	p.Suffix = norm.NFC.String(p.Suffix)
	return p
}
