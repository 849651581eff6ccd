package dataprocessing

import (
	"strconv"
	"strings"
)

// Combine concatenates row-sets into one table by column-name union.
// Columns keep first-seen order; rows from a set lacking a column get a
// blank cell there. Rows retain no provenance.
func Combine(rowSets []*RowSet) *RowSet {
	combined := &RowSet{}
	seen := make(map[string]int)

	for _, rs := range rowSets {
		for _, col := range rs.Columns {
			if _, ok := seen[col]; !ok {
				seen[col] = len(combined.Columns)
				combined.Columns = append(combined.Columns, col)
			}
		}
	}

	for _, rs := range rowSets {
		for _, row := range rs.Rows {
			cells := make([]string, len(combined.Columns))
			for i, col := range rs.Columns {
				if i < len(row) {
					cells[seen[col]] = row[i]
				}
			}
			combined.Rows = append(combined.Rows, cells)
		}
	}

	return combined
}

// NormalizeNumericColumns coerces the named columns to numbers in place.
// Every character that is not a digit, period, or minus sign is stripped
// (currency symbols, thousands separators, footnote markers), then the
// remainder is parsed as a float. Values that still fail to parse become
// blank, never zero and never an error. Surviving values are rewritten in
// canonical decimal form.
// Columns named but absent from the table are ignored.
func NormalizeNumericColumns(rs *RowSet, columns []string) {
	for _, col := range columns {
		idx := rs.ColumnIndex(col)
		if idx < 0 {
			continue
		}

		for _, row := range rs.Rows {
			row[idx] = normalizeNumeric(row[idx])
		}
	}
}

// normalizeNumeric strips non-numeric characters and reformats the value
func normalizeNumeric(value string) string {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
