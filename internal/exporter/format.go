package exporter

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"poscli/internal/config"
)

// Display formats. Negative currency renders red and parenthesized.
const (
	currencyFormat   = "$#,##0.00;[Red]($#,##0.00)"
	percentageFormat = "0.00%"
)

// Column width bounds for the sized columns, in character units.
const (
	minColumnWidth = 10.0
	maxColumnWidth = 60.0
)

// Formatter applies the presentation pass to a saved output workbook:
// currency and percentage number formats, frozen header row and first
// column, and width sizing for the configured columns.
//
// Percentage columns are normalized by dividing every data cell by 100
// before the format is applied (the macro writes whole-number percents,
// 12.5 meaning 12.5%). That makes Format non-reentrant: running it a
// second time on the same file would halve the percentages again. The
// pipeline runs it exactly once per output file.
type Formatter struct {
	columns config.ColumnsConfig
	logger  *slog.Logger
}

// NewFormatter creates a formatter for the given column configuration
func NewFormatter(columns config.ColumnsConfig, logger *slog.Logger) *Formatter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Formatter{columns: columns, logger: logger}
}

// Format applies the presentation pass to the workbook at path and saves
// it in place. Configured columns missing from the header are logged and
// skipped, never an abort condition.
func (fm *Formatter) Format(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("workbook is empty")
	}

	// Header-to-index map built once; all column lookups go through it.
	headerIndex := make(map[string]int)
	for i, h := range rows[0] {
		headerIndex[strings.TrimSpace(h)] = i + 1
	}

	if err := fm.formatCurrency(f, sheet, headerIndex); err != nil {
		return err
	}
	if err := fm.formatPercentages(f, sheet, headerIndex, len(rows)); err != nil {
		return err
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}

	fm.sizeColumns(f, sheet, headerIndex, rows)

	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// formatCurrency applies the currency number format to the numeric columns
func (fm *Formatter) formatCurrency(f *excelize.File, sheet string, headerIndex map[string]int) error {
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(currencyFormat)})
	if err != nil {
		return fmt.Errorf("failed to create currency style: %w", err)
	}

	for _, col := range fm.columns.Numeric {
		idx, ok := headerIndex[col]
		if !ok {
			fm.logger.Warn("numeric column not found in output, skipping",
				slog.String("column", col))
			continue
		}

		name, err := excelize.ColumnNumberToName(idx)
		if err != nil {
			return fmt.Errorf("failed to resolve column %s: %w", col, err)
		}
		if err := f.SetColStyle(sheet, name, style); err != nil {
			return fmt.Errorf("failed to style column %s: %w", col, err)
		}
	}
	return nil
}

// formatPercentages divides each data cell by 100 and applies the
// percentage number format. Assumes whole-number percent values in the
// macro output; see the Formatter doc for the reentrancy consequence.
func (fm *Formatter) formatPercentages(f *excelize.File, sheet string, headerIndex map[string]int, rowCount int) error {
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(percentageFormat)})
	if err != nil {
		return fmt.Errorf("failed to create percentage style: %w", err)
	}

	for _, col := range fm.columns.Percentage {
		idx, ok := headerIndex[col]
		if !ok {
			fm.logger.Warn("percentage column not found in output, skipping",
				slog.String("column", col))
			continue
		}

		name, err := excelize.ColumnNumberToName(idx)
		if err != nil {
			return fmt.Errorf("failed to resolve column %s: %w", col, err)
		}

		for row := 2; row <= rowCount; row++ {
			addr, err := excelize.CoordinatesToCellName(idx, row)
			if err != nil {
				return fmt.Errorf("failed to compute cell address: %w", err)
			}

			// Raw stored value, not the rendered format.
			raw, err := f.GetCellValue(sheet, addr, excelize.Options{RawCellValue: true})
			if err != nil {
				return fmt.Errorf("failed to read cell %s: %w", addr, err)
			}
			if raw == "" {
				continue
			}

			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			if err := f.SetCellValue(sheet, addr, v/100); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", addr, err)
			}
		}

		if err := f.SetColStyle(sheet, name, style); err != nil {
			return fmt.Errorf("failed to style column %s: %w", col, err)
		}
	}
	return nil
}

// sizeColumns widens the numeric, percentage, and account columns to fit
// their longest rendered value. Best effort; sizing failures only log.
func (fm *Formatter) sizeColumns(f *excelize.File, sheet string, headerIndex map[string]int, rows [][]string) {
	targets := make([]string, 0, len(fm.columns.Numeric)+len(fm.columns.Percentage)+1)
	targets = append(targets, fm.columns.Numeric...)
	targets = append(targets, fm.columns.Percentage...)
	targets = append(targets, fm.columns.AccountColumn)

	for _, col := range targets {
		idx, ok := headerIndex[col]
		if !ok {
			continue
		}

		width := float64(utf8.RuneCountInString(col))
		for _, row := range rows {
			if idx-1 < len(row) {
				if w := float64(utf8.RuneCountInString(row[idx-1])); w > width {
					width = w
				}
			}
		}
		// Rendered formats add symbols the raw value does not carry.
		width += 3
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}

		name, err := excelize.ColumnNumberToName(idx)
		if err != nil {
			fm.logger.Warn("failed to resolve column for sizing",
				slog.String("column", col),
				slog.String("error", err.Error()))
			continue
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			fm.logger.Warn("failed to size column",
				slog.String("column", col),
				slog.String("error", err.Error()))
		}
	}
}

func strPtr(s string) *string {
	return &s
}
