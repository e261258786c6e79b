// Package export writes a frequency table to a two-column tabular file. Rows
// are written in the order given; writers never sort.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rcliao/wordfreq/internal/model"
)

// ErrUnsupportedFormat is returned for an unknown output format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Header labels of the two output columns.
const (
	TermHeader  = "Word"
	CountHeader = "Count"
)

const DefaultSheet = "Sheet1"

// Writer serializes table rows to a file.
type Writer interface {
	Write(path string, entries []model.Entry) error
	Format() string
}

// Options configures writer construction.
type Options struct {
	Format string
	Sheet  string
}

// New returns the writer for opts.Format.
func New(opts Options) (Writer, error) {
	switch strings.ToLower(opts.Format) {
	case "xlsx", "":
		sheet := opts.Sheet
		if sheet == "" {
			sheet = DefaultSheet
		}
		return &XLSXWriter{Sheet: sheet}, nil
	case "csv":
		return &CSVWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: xlsx, csv)", ErrUnsupportedFormat, opts.Format)
	}
}

// OutputPath derives the table path from the input path. A trailing ".txt"
// (any case) is replaced by the format extension; otherwise the extension is
// appended so the input is never overwritten.
func OutputPath(input, format string) string {
	if format == "" {
		format = "xlsx"
	}
	ext := "." + strings.ToLower(format)
	if strings.EqualFold(filepath.Ext(input), ".txt") {
		return input[:len(input)-len(".txt")] + ext
	}
	return input + ext
}

// FormatFromPath returns the format implied by a path's extension, or "".
func FormatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if model.ValidFormats[ext] {
		return ext
	}
	return ""
}
