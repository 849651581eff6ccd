package dataprocessing

import (
	"strings"
)

// Clean removes boilerplate rows and trims whitespace from every cell.
//
// If the account-identifier column is present, any row whose value in that
// column starts with one of the configured prefixes is dropped; brokerage
// exports embed disclaimer and download-stamp text as trailing "rows" in
// that column. Prefix matching is case-sensitive. Without the column the
// row filter is a no-op and only trimming applies.
//
// The input RowSet is not mutated; a cleaned copy is returned.
func Clean(rs *RowSet, accountColumn string, exclusionPrefixes []string) *RowSet {
	accountIdx := rs.ColumnIndex(accountColumn)

	cleaned := &RowSet{Columns: append([]string(nil), rs.Columns...)}
	for _, row := range rs.Rows {
		if accountIdx >= 0 && matchesAnyPrefix(row[accountIdx], exclusionPrefixes) {
			continue
		}

		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.TrimSpace(cell)
		}
		cleaned.Rows = append(cleaned.Rows, cells)
	}

	return cleaned
}

// matchesAnyPrefix reports whether the value starts with any configured prefix
func matchesAnyPrefix(value string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
