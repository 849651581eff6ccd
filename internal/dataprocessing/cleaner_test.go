package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPrefixes = []string{
	"The data and information",
	"Brokerage services are",
	"Date downloaded",
}

func TestClean_RemovesBoilerplateRows(t *testing.T) {
	rs := &RowSet{
		Columns: []string{"Account Number", "Symbol"},
		Rows: [][]string{
			{"12345", "AAPL"},
			{"Brokerage services are provided by ...", ""},
			{"67890", "MSFT"},
			{"Date downloaded 01/15/2026", ""},
			{"The data and information herein ...", ""},
		},
	}

	cleaned := Clean(rs, "Account Number", testPrefixes)

	require.Len(t, cleaned.Rows, 2)
	assert.Equal(t, "12345", cleaned.Rows[0][0])
	assert.Equal(t, "67890", cleaned.Rows[1][0])
}

func TestClean_PrefixMatchIsCaseSensitive(t *testing.T) {
	rs := &RowSet{
		Columns: []string{"Account Number"},
		Rows: [][]string{
			{"brokerage services are ..."},
			{"Brokerage services are ..."},
		},
	}

	cleaned := Clean(rs, "Account Number", testPrefixes)

	require.Len(t, cleaned.Rows, 1)
	assert.Equal(t, "brokerage services are ...", cleaned.Rows[0][0])
}

func TestClean_TrimsWhitespace(t *testing.T) {
	rs := &RowSet{
		Columns: []string{"Account Number", "Symbol"},
		Rows: [][]string{
			{"  12345  ", " AAPL\t"},
		},
	}

	cleaned := Clean(rs, "Account Number", testPrefixes)

	require.Len(t, cleaned.Rows, 1)
	assert.Equal(t, []string{"12345", "AAPL"}, cleaned.Rows[0])
}

func TestClean_NoAccountColumn(t *testing.T) {
	rs := &RowSet{
		Columns: []string{"Symbol", "Quantity"},
		Rows: [][]string{
			{"AAPL", "10"},
			{"Brokerage services are ...", ""},
		},
	}

	cleaned := Clean(rs, "Account Number", testPrefixes)

	// Without the identifier column nothing is filtered, only trimmed.
	assert.Len(t, cleaned.Rows, 2)
}

func TestClean_DoesNotMutateInput(t *testing.T) {
	rs := &RowSet{
		Columns: []string{"Account Number"},
		Rows: [][]string{
			{"  12345  "},
		},
	}

	Clean(rs, "Account Number", testPrefixes)

	assert.Equal(t, "  12345  ", rs.Rows[0][0])
}
