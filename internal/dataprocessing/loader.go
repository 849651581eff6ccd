package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadFile reads one brokerage export file into a RowSet. The first row is
// taken as the header; data rows are padded or truncated to the header
// width, since spreadsheet exports routinely carry ragged trailing cells.
func LoadFile(filePath string) (*RowSet, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx", ".xls":
		return loadWorkbook(filePath)
	case ".csv":
		return loadCSV(filePath)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Base(filePath))
	}
}

// loadWorkbook reads the first sheet of a spreadsheet file
func loadWorkbook(filePath string) (*RowSet, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return rowSetFromRows(rows)
}

// loadCSV reads a delimited-text export
func loadCSV(filePath string) (*RowSet, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Brokerage exports append disclaimer lines with arbitrary field counts.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	return rowSetFromRows(rows)
}

// rowSetFromRows builds a RowSet from raw rows, treating the first row as
// the header.
func rowSetFromRows(rows [][]string) (*RowSet, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file contains no rows")
	}

	columns := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		columns[i] = strings.TrimSpace(h)
	}

	rs := &RowSet{Columns: columns}
	for _, row := range rows[1:] {
		cells := make([]string, len(columns))
		for i := range columns {
			if i < len(row) {
				cells[i] = row[i]
			}
		}
		rs.Rows = append(rs.Rows, cells)
	}

	return rs, nil
}
