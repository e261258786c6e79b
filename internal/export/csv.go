package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rcliao/wordfreq/internal/model"
)

// CSVWriter writes a comma-separated table with a header row.
type CSVWriter struct{}

func (w *CSVWriter) Format() string { return "csv" }

func (w *CSVWriter) Write(path string, entries []model.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	cw.Write([]string{TermHeader, CountHeader})
	for _, e := range entries {
		cw.Write([]string{e.Term, strconv.Itoa(e.Count)})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
