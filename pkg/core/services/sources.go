package services

import (
	"context"
	"fmt"

	"github.com/akbowen/ru-health-hack-2025-sub000/internal/config"
)

// GridReader reads one tab of a spreadsheet as raw cells
type GridReader interface {
	ReadGrid(ctx context.Context, location, tab string) ([][]interface{}, error)
}

// SourceReader reads the grid a configured source points at
type SourceReader interface {
	Read(ctx context.Context, src config.Source) ([][]interface{}, error)
}

// Sources routes a source to the reader for its kind. A nil reader means that
// kind is not available, e.g. Sheets when no OAuth client was loaded.
type Sources struct {
	Sheets GridReader
	XLSX   GridReader
}

func (s Sources) Read(ctx context.Context, src config.Source) ([][]interface{}, error) {
	var reader GridReader
	switch src.Kind {
	case config.SourceSheets:
		reader = s.Sheets
	case config.SourceXLSX:
		reader = s.XLSX
	default:
		return nil, fmt.Errorf("unknown source kind %q", src.Kind)
	}

	if reader == nil {
		return nil, fmt.Errorf("no reader configured for %s sources", src.Kind)
	}

	return reader.ReadGrid(ctx, src.Location, src.Tab)
}

// sheetName labels a source in errors and logs
func sheetName(src config.Source) string {
	if src.Tab != "" {
		return src.Tab
	}
	return src.Location
}
