package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMacroRef(t *testing.T) {
	tests := []struct {
		workbook string
		macro    string
		expected string
	}{
		{"rules.xlsm", "ProcessExclusionsAndTotals", "'rules.xlsm'!ProcessExclusionsAndTotals"},
		{"My Macros.xlsm", "UpdateTotals", "'My Macros.xlsm'!UpdateTotals"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MacroRef(tt.workbook, tt.macro))
	}
}
