package grid

import (
	"strings"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

const dayMarkerSearchRows = 20

type dayHeaderParser struct{}

func (dayHeaderParser) format() Format { return FormatDayHeader }

func (dayHeaderParser) parse(rows [][]interface{}, opts Options) (*Result, bool) {
	for i := 0; i < len(rows) && i < dayMarkerSearchRows; i++ {
		if cellAt(rows[i], 0) != "Day" {
			continue
		}
		cols := pairColumns(rows[i])
		if len(cols) == 0 {
			return nil, false
		}
		layout := columnLayout{dataStart: i + 1, columns: cols}
		return layout.extract(rows, opts), true
	}
	return nil, false
}

type pairHeaderParser struct{}

func (pairHeaderParser) format() Format { return FormatPairHeader }

func (pairHeaderParser) parse(rows [][]interface{}, opts Options) (*Result, bool) {
	cols := pairColumns(rows[0])
	if len(cols) == 0 {
		return nil, false
	}
	layout := columnLayout{dataStart: 1, columns: cols}
	return layout.extract(rows, opts), true
}

type twoRowHeaderParser struct{}

func (twoRowHeaderParser) format() Format { return FormatTwoRowHeader }

func (twoRowHeaderParser) parse(rows [][]interface{}, opts Options) (*Result, bool) {
	sites, codes := rows[0], rows[1]

	var cols []siteShiftColumn
	hasShiftCode := false
	site := ""
	width := len(sites)
	if len(codes) > width {
		width = len(codes)
	}
	for j := 1; j < width; j++ {
		// merged site cells are only filled in their first column
		if s := cellAt(sites, j); s != "" {
			site = s
		}
		code := cellAt(codes, j)
		if site == "" || code == "" {
			continue
		}
		if model.ClassifyShift(code).IsCounted() {
			hasShiftCode = true
		}
		cols = append(cols, siteShiftColumn{index: j, site: site, shift: code})
	}

	if !hasShiftCode || len(cols) == 0 {
		return nil, false
	}
	layout := columnLayout{dataStart: 2, columns: cols}
	return layout.extract(rows, opts), true
}

// flatParser reads one assignment per row from named columns
type flatParser struct{}

func (flatParser) format() Format { return FormatFlat }

var flatHeaderAliases = map[string][]string{
	"provider":  {"provider", "providername", "physician", "name"},
	"site":      {"site", "sitename", "facility", "facilityname", "location"},
	"date":      {"date", "day", "shiftdate"},
	"shift":     {"shift", "shifttype", "shiftcode"},
	"starttime": {"starttime", "start"},
	"endtime":   {"endtime", "end"},
	"notes":     {"notes", "note", "comments"},
	"status":    {"status"},
}

func headerKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func flatColumns(header []interface{}) map[string]int {
	idx := make(map[string]int)
	for j, cell := range header {
		key := headerKey(CellString(cell))
		for field, aliases := range flatHeaderAliases {
			if _, done := idx[field]; done {
				continue
			}
			for _, a := range aliases {
				if key == a {
					idx[field] = j
				}
			}
		}
	}
	return idx
}

func (flatParser) parse(rows [][]interface{}, opts Options) (*Result, bool) {
	cols := flatColumns(rows[0])
	for _, required := range []string{"provider", "site", "date"} {
		if _, ok := cols[required]; !ok {
			return nil, false
		}
	}

	field := func(row []interface{}, name string) string {
		j, ok := cols[name]
		if !ok {
			return ""
		}
		return cellAt(row, j)
	}

	dates := newDateResolver(rows, cols["date"], 1, opts)
	res := &Result{Period: dates.period}
	seenDays := make(map[string]bool)

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		dateCol := cols["date"]
		if dateCol >= len(row) {
			continue
		}
		date, ok := dates.resolve(row[dateCol])
		if !ok {
			continue
		}
		if key := date.Format("2006-01-02"); !seenDays[key] {
			seenDays[key] = true
			res.Days = append(res.Days, date)
		}

		site := field(row, "site")
		if site == "" {
			continue
		}
		start, end := field(row, "starttime"), field(row, "endtime")
		shift := field(row, "shift")
		if shift == "" && start != "" && end != "" {
			shift = start + "-" + end
		}

		tokens := splitProviders(field(row, "provider"))
		if len(tokens) == 0 {
			res.Uncovered = append(res.Uncovered, Slot{Site: site, ShiftCode: shift, Date: date})
			continue
		}

		status, notes := strings.ToLower(field(row, "status")), field(row, "notes")
		for _, tok := range tokens {
			res.Facts = append(res.Facts, Fact{
				Provider:  tok.name,
				Site:      site,
				ShiftCode: shift,
				Date:      date,
				Gap:       tok.gap,
				Status:    status,
				Notes:     notes,
				StartTime: start,
				EndTime:   end,
			})
		}
	}

	return res, true
}
