package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rcliao/wordfreq/internal/model"
)

// XLSXWriter writes a single-sheet Excel workbook.
type XLSXWriter struct {
	Sheet string
}

func (w *XLSXWriter) Format() string { return "xlsx" }

func (w *XLSXWriter) Write(path string, entries []model.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if w.Sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, w.Sheet); err != nil {
			return fmt.Errorf("name sheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(w.Sheet)
	if err != nil {
		return fmt.Errorf("open sheet: %w", err)
	}
	if err := sw.SetRow("A1", []interface{}{TermHeader, CountHeader}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, []interface{}{e.Term, e.Count}); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
