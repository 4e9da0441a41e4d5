package sheetsclient

import (
	"fmt"
	"slices"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/grid"
)

// reportHeaderRow is the zero-based row the table header is written to.
// Row 1 carries the title and row 2 is left blank.
const reportHeaderRow = 2

// Report is one published table. Rows are keyed by their first cell.
type Report struct {
	Title  string // tab title, e.g. "Compliance - Oct 2025"
	Note   string // written to A1
	Header []string
	Rows   [][]interface{}
}

// PublishReport writes a report to its own tab, creating it when missing.
// An existing tab is rewritten in full, but any extra columns someone added to
// the right of the report keep their values for rows whose key is still present.
func (c *Client) PublishReport(spreadsheetID string, report *Report) error {
	titles, err := c.SheetTitles(spreadsheetID)
	if err != nil {
		return err
	}

	tabRange := fmt.Sprintf("'%s'!%s", report.Title, defaultRange)

	var existing [][]interface{}
	if slices.Contains(titles, report.Title) {
		existing, err = c.GetValues(spreadsheetID, tabRange)
		if err != nil {
			return fmt.Errorf("failed to read existing report tab: %w", err)
		}
		if err := c.ClearValues(spreadsheetID, tabRange); err != nil {
			return err
		}
	} else if _, err := c.CreateSheet(spreadsheetID, report.Title); err != nil {
		return fmt.Errorf("failed to create report tab: %w", err)
	}

	if err := c.UpdateValues(spreadsheetID, fmt.Sprintf("'%s'!A1", report.Title), mergeReport(existing, report)); err != nil {
		return fmt.Errorf("failed to write report %q: %w", report.Title, err)
	}

	return nil
}

// mergeReport lays out the report rows, carrying over user columns from an existing tab
func mergeReport(existing [][]interface{}, report *Report) [][]interface{} {
	var extraCols []int
	var extraHeader []interface{}
	previous := make(map[string][]interface{})

	if len(existing) > reportHeaderRow {
		oldHeader := existing[reportHeaderRow]
		for i, cell := range oldHeader {
			name := grid.CellString(cell)
			if name == "" || slices.Contains(report.Header, name) {
				continue
			}
			extraCols = append(extraCols, i)
			extraHeader = append(extraHeader, name)
		}
		for _, row := range existing[reportHeaderRow+1:] {
			if len(row) == 0 {
				continue
			}
			if key := grid.CellString(row[0]); key != "" {
				previous[key] = row
			}
		}
	}

	header := make([]interface{}, 0, len(report.Header)+len(extraHeader))
	for _, h := range report.Header {
		header = append(header, h)
	}
	header = append(header, extraHeader...)

	out := [][]interface{}{{report.Note}, {}, header}
	for _, row := range report.Rows {
		line := make([]interface{}, len(report.Header), len(header))
		copy(line, row)
		for i := range line {
			if line[i] == nil {
				line[i] = ""
			}
		}

		var old []interface{}
		if len(row) > 0 {
			old = previous[grid.CellString(row[0])]
		}
		for _, col := range extraCols {
			if col < len(old) {
				line = append(line, old[col])
			} else {
				line = append(line, "")
			}
		}
		out = append(out, line)
	}

	return out
}
