package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name      string
		supported bool
	}{
		{"positions.xlsx", true},
		{"positions.XLSX", true},
		{"legacy.xls", true},
		{"export.csv", true},
		{"notes.txt", false},
		{"report.pdf", false},
		{"positions", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.supported, IsSupported(tt.name))
		})
	}
}

func TestFindExportFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_positions.csv")
	writeFile(t, dir, "a_positions.xlsx")
	writeFile(t, dir, "readme.txt")
	writeFile(t, dir, "~$a_positions.xlsx")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0755))

	d := NewDiscovery(dir)
	found, err := d.FindExportFiles(dir)
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "a_positions.xlsx", found[0].Name)
	assert.Equal(t, "b_positions.csv", found[1].Name)
}

func TestFindExportFiles_RelativeDir(t *testing.T) {
	base := t.TempDir()
	sub := filepath.Join(base, "exports")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFile(t, sub, "positions.csv")

	d := NewDiscovery(base)
	found, err := d.FindExportFiles("exports")
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(sub, "positions.csv"), found[0].Path)
}

func TestFindExportFiles_MissingDir(t *testing.T) {
	d := NewDiscovery(t.TempDir())
	_, err := d.FindExportFiles("does-not-exist")
	assert.Error(t, err)
}
