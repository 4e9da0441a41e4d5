// Package grid normalizes scheduling spreadsheets of several layouts into a
// flat list of (site, shift, provider, date) facts.
package grid

import (
	"time"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
)

type Format string

const (
	FormatDayHeader    Format = "A" // "Day" marker row followed by "<Site> - <Shift>" columns
	FormatTwoRowHeader Format = "B" // site names on row 0 propagated right, shift codes on row 1
	FormatPairHeader   Format = "C" // "<Site> - <Shift>" columns on row 0
	FormatFlat         Format = "D" // one assignment per row with named columns
)

// DefaultInferenceRows is how many data rows are scanned for a full date
const DefaultInferenceRows = 10

// Options control date resolution
type Options struct {
	// DefaultPeriod places bare day numbers when no full date is found in the sheet
	DefaultPeriod calendar.Period
	InferenceRows int
}

// Fact is a single provider assignment read from a sheet
type Fact struct {
	Provider  string
	Site      string
	ShiftCode string
	Date      time.Time
	Gap       bool
	Status    string
	Notes     string
	StartTime string
	EndTime   string
}

// Slot is a site-shift cell on a date with nobody assigned
type Slot struct {
	Site      string
	ShiftCode string
	Date      time.Time
}

// Result is the normalized content of one sheet
type Result struct {
	Sheet     string
	Format    Format
	Period    calendar.Period
	Facts     []Fact
	Uncovered []Slot
	Days      []time.Time // distinct dates of data rows, in sheet order
}

// parser is one layout in the detection chain. parse reports false when the
// layout does not match so the next parser is tried.
type parser interface {
	format() Format
	parse(rows [][]interface{}, opts Options) (*Result, bool)
}

// Flat comes before the two-row layout: a flat sheet's second row usually
// holds shift codes and would otherwise be read as a two-row header.
var parsers = []parser{
	dayHeaderParser{},
	pairHeaderParser{},
	flatParser{},
	twoRowHeaderParser{},
}

// Normalize detects the layout of a sheet and flattens it into facts
func Normalize(sheet string, rows [][]interface{}, opts Options) (*Result, error) {
	if usableRows(rows) < 2 {
		return nil, &FormatError{Sheet: sheet, Err: ErrTooFewRows}
	}

	for _, p := range parsers {
		res, ok := p.parse(rows, opts)
		if !ok {
			continue
		}
		res.Sheet = sheet
		res.Format = p.format()
		return res, nil
	}

	return nil, &FormatError{Sheet: sheet, Err: ErrUnrecognizedLayout}
}

func usableRows(rows [][]interface{}) int {
	n := 0
	for _, row := range rows {
		for _, cell := range row {
			if CellString(cell) != "" {
				n++
				break
			}
		}
	}
	return n
}
