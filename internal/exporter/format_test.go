package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"poscli/internal/config"
	"poscli/internal/dataprocessing"
)

func testColumns() config.ColumnsConfig {
	return config.ColumnsConfig{
		AccountColumn: "Account Number",
		Numeric:       []string{"Last Price"},
		Percentage:    []string{"Percent Of Account"},
	}
}

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	rs := &dataprocessing.RowSet{
		Columns: []string{"Account Number", "Last Price", "Percent Of Account"},
		Rows: [][]string{
			{"12345", "1234.56", "12.5"},
			{"67890", "10", ""},
		},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteWorkbook(path, rs, []string{"Last Price", "Percent Of Account"}))
	return path
}

func TestFormat_DividesPercentages(t *testing.T) {
	path := writeTestWorkbook(t)
	fm := NewFormatter(testColumns(), nil)
	require.NoError(t, fm.Format(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// 12.5 became the fractional 0.125 the percentage format expects.
	raw, err := f.GetCellValue(SheetName, "C2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "0.125", raw)

	// Blank percentage cells stay blank.
	raw, err = f.GetCellValue(SheetName, "C3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Empty(t, raw)

	// Currency values are not rescaled.
	raw, err = f.GetCellValue(SheetName, "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1234.56", raw)
}

// Format is documented as non-reentrant: the /100 conversion is applied on
// every invocation, so a second pass halves the percentages again. The
// pipeline must run the formatter exactly once per output file.
func TestFormat_NonReentrant(t *testing.T) {
	path := writeTestWorkbook(t)
	fm := NewFormatter(testColumns(), nil)
	require.NoError(t, fm.Format(path))
	require.NoError(t, fm.Format(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	raw, err := f.GetCellValue(SheetName, "C2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "0.00125", raw)
}

func TestFormat_FreezesPanes(t *testing.T) {
	path := writeTestWorkbook(t)
	fm := NewFormatter(testColumns(), nil)
	require.NoError(t, fm.Format(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	panes, err := f.GetPanes(SheetName)
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.XSplit)
	assert.Equal(t, 1, panes.YSplit)
	assert.Equal(t, "B2", panes.TopLeftCell)
}

func TestFormat_SizesColumns(t *testing.T) {
	path := writeTestWorkbook(t)
	fm := NewFormatter(testColumns(), nil)
	require.NoError(t, fm.Format(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// "Percent Of Account" is 18 runes; width covers it plus padding.
	width, err := f.GetColWidth(SheetName, "C")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, width, 18.0)
	assert.LessOrEqual(t, width, maxColumnWidth)
}

func TestFormat_MissingColumnsSkipped(t *testing.T) {
	path := writeTestWorkbook(t)

	columns := testColumns()
	columns.Numeric = append(columns.Numeric, "Cost Basis Total")
	columns.Percentage = append(columns.Percentage, "Total Gain/Loss Percent")

	fm := NewFormatter(columns, nil)
	assert.NoError(t, fm.Format(path))
}

func TestFormat_MissingFile(t *testing.T) {
	fm := NewFormatter(testColumns(), nil)
	assert.Error(t, fm.Format(filepath.Join(t.TempDir(), "absent.xlsx")))
}
