// Package dataprocessing turns a folder's worth of brokerage position
// exports into one clean combined table.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Loader: Reads one .xlsx/.xls/.csv export into a RowSet of string cells
// 2. Cleaner: Drops boilerplate rows and trims cell whitespace
// 3. Combiner: Concatenates RowSets by column union and coerces the
// configured numeric and percentage columns to numbers
//
// # Usage
//
//	rs, err := dataprocessing.LoadFile("exports/positions.csv")
//	if err != nil {
//	    // log and skip; a bad file never aborts the batch
//	}
//	cleaned := dataprocessing.Clean(rs, "Account Number", prefixes)
//
//	combined := dataprocessing.Combine(cleaned)
//	dataprocessing.NormalizeNumericColumns(combined, numericColumns)
//	dataprocessing.NormalizeNumericColumns(combined, percentageColumns)
//
// # Coercion policy
//
// Numeric normalization strips every character that is not a digit, period,
// or minus sign before parsing, so "$1,234.56" becomes 1234.56. A value
// with nothing parseable left ("N/A") becomes blank rather than zero or an
// error; brokerage exports glue currency symbols and footnote markers onto
// numbers too often for strict parsing to be useful.
package dataprocessing
