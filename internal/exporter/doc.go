// Package exporter writes the combined position table to a timestamped
// workbook and applies the presentation pass to the finished file.
//
// This package contains two main components:
//
// WriteWorkbook: Writes the combined table to a new .xlsx file, typing the
// normalized numeric cells as numbers so display formats can apply.
//
// Formatter: Applies currency and percentage number formats, freezes the
// header row and first column, and sizes the configured columns. Runs
// against the saved file after the macro stage; it is a one-shot pass (see
// Formatter for the percentage reentrancy caveat).
//
// Example usage:
//
//	outPath := exporter.TimestampedPath("reports/positions.xlsx", time.Now())
//	if err := exporter.WriteWorkbook(outPath, combined, numericCols); err != nil {
//	    return err
//	}
//
//	fm := exporter.NewFormatter(cfg.Columns, logger)
//	err := fm.Format(outPath)
package exporter
