// Package xlsxclient reads schedule and reference grids from local .xlsx workbooks
package xlsxclient

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Client opens workbooks on demand; it holds no open file handles between calls
type Client struct {
	logger *zap.Logger
}

func NewClient(logger *zap.Logger) *Client {
	return &Client{logger: logger}
}

// ReadGrid returns every row of a tab as raw cells. An empty tab name reads the
// first sheet. Cells are unformatted, so dates arrive as serial numbers.
func (c *Client) ReadGrid(ctx context.Context, path, tab string) ([][]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			c.logger.Warn("Failed to close workbook", zap.String("path", path), zap.Error(err))
		}
	}()

	sheet := tab
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q from %s: %w", sheet, path, err)
	}

	c.logger.Debug("Read workbook sheet",
		zap.String("path", path),
		zap.String("sheet", sheet),
		zap.Int("rows", len(rows)))

	grid := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		grid[i] = cells
	}
	return grid, nil
}

// SheetNames lists the tabs of a workbook in order
func (c *Client) SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}
