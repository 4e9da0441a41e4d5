package grid

import "time"

// siteShiftColumn is a sheet column holding providers for one site and shift
type siteShiftColumn struct {
	index int
	site  string
	shift string
}

// columnLayout describes the column-oriented layouts (A, B, C), where the date
// is in column 0 and every other column is a site-shift pair
type columnLayout struct {
	dataStart int
	columns   []siteShiftColumn
}

func (l columnLayout) extract(rows [][]interface{}, opts Options) *Result {
	dates := newDateResolver(rows, 0, l.dataStart, opts)
	res := &Result{Period: dates.period}
	seenDays := make(map[time.Time]bool)

	for i := l.dataStart; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}
		date, ok := dates.resolve(row[0])
		if !ok {
			continue
		}
		if !seenDays[date] {
			seenDays[date] = true
			res.Days = append(res.Days, date)
		}

		for _, col := range l.columns {
			tokens := splitProviders(cellAt(row, col.index))
			if len(tokens) == 0 {
				res.Uncovered = append(res.Uncovered, Slot{Site: col.site, ShiftCode: col.shift, Date: date})
				continue
			}
			for _, tok := range tokens {
				res.Facts = append(res.Facts, Fact{
					Provider:  tok.name,
					Site:      col.site,
					ShiftCode: col.shift,
					Date:      date,
					Gap:       tok.gap,
				})
			}
		}
	}

	return res
}

// pairColumns reads "<Site> - <Shift>" headers from a row, skipping column 0
func pairColumns(header []interface{}) []siteShiftColumn {
	var cols []siteShiftColumn
	for j := 1; j < len(header); j++ {
		site, shift, ok := splitSiteShift(CellString(header[j]))
		if !ok {
			continue
		}
		cols = append(cols, siteShiftColumn{index: j, site: site, shift: shift})
	}
	return cols
}
