package grid

import (
	"math"
	"strconv"
	"time"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
)

// Excel counts days from 1899-12-30 once the 1900 leap-year bug is accounted for
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Serials below this are treated as bare days or noise, never as dates
const minExcelSerial = 60

var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Mon Jan 02 2006",
	"Mon, Jan 2, 2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseDateCell interprets a date column cell. It returns either a full date,
// or a bare day-of-month with a zero time.
func parseDateCell(v interface{}) (time.Time, int, bool) {
	switch c := v.(type) {
	case nil:
		return time.Time{}, 0, false
	case time.Time:
		return calendar.DayKey(c), 0, true
	case float64:
		return fromNumber(c)
	case int:
		return fromNumber(float64(c))
	case int64:
		return fromNumber(float64(c))
	}

	s := CellString(v)
	if s == "" {
		return time.Time{}, 0, false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return fromNumber(n)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return calendar.DayKey(t), 0, true
		}
	}
	return time.Time{}, 0, false
}

func fromNumber(n float64) (time.Time, int, bool) {
	if n >= 1 && n <= 31 && n == math.Trunc(n) {
		return time.Time{}, int(n), true
	}
	if n >= minExcelSerial {
		return excelEpoch.AddDate(0, 0, int(math.Floor(n))), 0, true
	}
	return time.Time{}, 0, false
}

// dateResolver turns date cells into calendar dates, placing bare days in the
// month inferred from the sheet or the configured fallback
type dateResolver struct {
	period calendar.Period
}

func newDateResolver(rows [][]interface{}, dateCol, dataStart int, opts Options) *dateResolver {
	limit := opts.InferenceRows
	if limit <= 0 {
		limit = DefaultInferenceRows
	}

	for i := dataStart; i < len(rows) && i < dataStart+limit; i++ {
		if dateCol >= len(rows[i]) {
			continue
		}
		if full, _, ok := parseDateCell(rows[i][dateCol]); ok && !full.IsZero() {
			return &dateResolver{period: calendar.PeriodOf(full)}
		}
	}

	return &dateResolver{period: opts.DefaultPeriod}
}

func (r *dateResolver) resolve(v interface{}) (time.Time, bool) {
	full, day, ok := parseDateCell(v)
	if !ok {
		return time.Time{}, false
	}
	if !full.IsZero() {
		return full, true
	}
	if r.period.IsZero() || day > r.period.DaysInMonth() {
		return time.Time{}, false
	}
	return r.period.Date(day), true
}
