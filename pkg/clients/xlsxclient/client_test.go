package xlsxclient

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}, order []string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadGrid(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Schedule": {
			{"Day", "North - MD1"},
			{45931, "Dr. A"},
		},
		"Volume": {
			{"facility_name", "Volume_MD1"},
			{"North", 12.5},
		},
	}, []string{"Schedule", "Volume"})

	c := NewClient(zap.NewNop())

	rows, err := c.ReadGrid(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{
		{"Day", "North - MD1"},
		{"45931", "Dr. A"},
	}, rows)

	rows, err = c.ReadGrid(context.Background(), path, "Volume")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "12.5", rows[1][1])

	names, err := c.SheetNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Schedule", "Volume"}, names)
}

func TestReadGrid_Errors(t *testing.T) {
	c := NewClient(zap.NewNop())

	_, err := c.ReadGrid(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open workbook")

	path := writeWorkbook(t, map[string][][]interface{}{"Only": {{"x"}}}, []string{"Only"})
	_, err = c.ReadGrid(context.Background(), path, "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read sheet")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.ReadGrid(ctx, path, "")
	assert.ErrorIs(t, err, context.Canceled)
}
