package dataprocessing

// RowSet holds one loaded export file as a table of named columns. All
// cells are strings at this stage; numeric coercion happens after
// concatenation. A RowSet keeps no identity beyond its shape and is
// discarded once combined.
type RowSet struct {
	// Columns are the header names in sheet order.
	Columns []string
	// Rows hold the data cells, each row the same length as Columns.
	Rows [][]string
}

// ColumnIndex returns the position of the named column, or -1 if absent.
// Header match is exact.
func (rs *RowSet) ColumnIndex(name string) int {
	for i, col := range rs.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column is present
func (rs *RowSet) HasColumn(name string) bool {
	return rs.ColumnIndex(name) >= 0
}
