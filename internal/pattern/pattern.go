// Package pattern parses settings lines into literal and wildcard pattern
// descriptors.
package pattern

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rcliao/wordfreq/internal/model"
)

// ParseLine turns one trimmed, non-empty settings line into a Pattern.
// Only the first "~" splits a wildcard; any later "~" stays in the suffix.
func ParseLine(line string) model.Pattern {
	prefix, suffix, ok := strings.Cut(line, model.WildcardMark)
	if !ok {
		return model.Pattern{Raw: line, Kind: model.Literal, Text: line}
	}
	return model.Pattern{
		Raw:    line,
		Kind:   model.Wildcard,
		Prefix: strings.TrimSpace(prefix),
		Suffix: strings.TrimSpace(suffix),
	}
}

// Parse trims each line, drops blank ones, and parses the rest in order.
func Parse(lines []string) []model.Pattern {
	patterns := make([]model.Pattern, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		patterns = append(patterns, ParseLine(line))
	}
	return patterns
}

// ErrInvalidUTF8 is returned when settings are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("not valid UTF-8")

// Read parses settings from r. Lines end at "\n", "\r\n" or a lone "\r", and
// have no length limit.
func Read(r io.Reader) ([]model.Pattern, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("read settings: %w", ErrInvalidUTF8)
	}
	return Parse(splitLines(string(data))), nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
