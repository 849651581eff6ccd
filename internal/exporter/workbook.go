package exporter

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"poscli/internal/dataprocessing"
)

// SheetName is the sheet the combined table is written to and the sheet
// the formatter operates on.
const SheetName = "Sheet1"

// TimestampedPath inserts a second-resolution timestamp between the file
// stem and its extension. Two runs within the same second collide; accepted
// for a human-triggered batch tool.
func TimestampedPath(path string, now time.Time) string {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	stamp := now.Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, stamp, ext))
}

// WriteWorkbook writes the combined table to a new workbook at path. Cells
// in the named numeric columns are written as typed numbers so that number
// formats apply later; everything else is written as text. Blank numeric
// cells stay blank.
func WriteWorkbook(path string, rs *dataprocessing.RowSet, numericColumns []string) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet already carries this name; keep it explicit.
	index, err := f.GetSheetIndex(SheetName)
	if err != nil || index < 0 {
		if _, err := f.NewSheet(SheetName); err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}
	}

	numeric := make(map[int]bool)
	for _, col := range numericColumns {
		if idx := rs.ColumnIndex(col); idx >= 0 {
			numeric[idx] = true
		}
	}

	header := make([]any, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for r, row := range rs.Rows {
		cells := make([]any, len(row))
		for c, cell := range row {
			if numeric[c] && cell != "" {
				if v, err := strconv.ParseFloat(cell, 64); err == nil {
					cells[c] = v
					continue
				}
			}
			cells[c] = cell
		}

		addr, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell address: %w", err)
		}
		if err := f.SetSheetRow(SheetName, addr, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
