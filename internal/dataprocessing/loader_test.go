package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeXLSX(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadFile_CSV(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "positions.csv",
		"Account Number,Symbol,Last Price\n12345,AAPL,\"$150.25\"\n67890,MSFT,$300.00\n")

	rs, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Account Number", "Symbol", "Last Price"}, rs.Columns)
	require.Len(t, rs.Rows, 2)
	assert.Equal(t, []string{"12345", "AAPL", "$150.25"}, rs.Rows[0])
}

func TestLoadFile_CSV_RaggedRows(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "positions.csv",
		"Account Number,Symbol\n12345,AAPL,extra\n67890\n")

	rs, err := LoadFile(path)
	require.NoError(t, err)

	require.Len(t, rs.Rows, 2)
	// Rows are squared off to the header width.
	assert.Equal(t, []string{"12345", "AAPL"}, rs.Rows[0])
	assert.Equal(t, []string{"67890", ""}, rs.Rows[1])
}

func TestLoadFile_XLSX(t *testing.T) {
	path := writeXLSX(t, t.TempDir(), "positions.xlsx", [][]any{
		{"Account Number", "Symbol", "Quantity"},
		{"12345", "AAPL", 10},
		{"67890", "MSFT", 5},
	})

	rs, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Account Number", "Symbol", "Quantity"}, rs.Columns)
	require.Len(t, rs.Rows, 2)
	assert.Equal(t, "AAPL", rs.Rows[0][1])
	assert.Equal(t, "10", rs.Rows[0][2])
}

func TestLoadFile_Unsupported(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "notes.txt", "hello")

	_, err := LoadFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestLoadFile_EmptyCSV(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "empty.csv", "")

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_CorruptXLSX(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "corrupt.xlsx", "this is not a workbook")

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_HeaderOnly(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "header.csv", "Account Number,Symbol\n")

	rs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, rs.Rows)
}
