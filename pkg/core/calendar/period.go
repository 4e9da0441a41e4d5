package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// DefaultWeekendRule marks Saturdays and Sundays
const DefaultWeekendRule = "FREQ=WEEKLY;BYDAY=SA,SU"

// Period is a reporting month
type Period struct {
	Year  int
	Month time.Month
}

func NewPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: month}
}

// PeriodOf returns the period containing t
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

func (p Period) IsZero() bool {
	return p.Year == 0 || p.Month == 0
}

// Start returns midnight UTC on the first day of the month
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight UTC on the last day of the month
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

func (p Period) DaysInMonth() int {
	return p.End().Day()
}

// Date returns the date for a day-of-month within the period
func (p Period) Date(day int) time.Time {
	return time.Date(p.Year, p.Month, day, 0, 0, 0, 0, time.UTC)
}

func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

// Label renders the period as "Oct 2025"
func (p Period) Label() string {
	return p.Start().Format("Jan 2006")
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// WeekendDays expands the weekend recurrence rule over the period and returns
// the matching days of the month as a set
func (p Period) WeekendDays(rule string) (map[int]bool, error) {
	if rule == "" {
		rule = DefaultWeekendRule
	}

	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse weekend rule: %w", err)
	}
	opt.Dtstart = p.Start()

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("failed to build weekend rule: %w", err)
	}

	days := make(map[int]bool)
	for _, t := range r.Between(p.Start(), p.End(), true) {
		days[t.Day()] = true
	}
	return days, nil
}

// DayKey normalises a timestamp to its calendar date in UTC
func DayKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ShortLabel renders a date as "Oct 1"
func ShortLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Format("Jan"), t.Day())
}
