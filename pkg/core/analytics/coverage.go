package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

// Slot is a facility shift on a date that should be staffed
type Slot struct {
	Facility  string          `json:"Facility"`
	ShiftType model.ShiftType `json:"Shift_Type"`
	Date      time.Time       `json:"Date"`
}

// CoverageSummary compares required slots with scheduled entries
type CoverageSummary struct {
	Required    int     `json:"Required"`
	Covered     int     `json:"Covered"`
	CoveragePct float64 `json:"Coverage_Pct"`
	Missing     []Slot  `json:"Missing"`
}

// ExpandRequirements turns coverage requirements into dated slots inside the
// period. Days past the end of the month are ignored.
func ExpandRequirements(reqs []model.CoverageRequirement, period calendar.Period) []Slot {
	var slots []Slot
	for _, r := range reqs {
		for _, d := range r.Days {
			if d < 1 || d > period.DaysInMonth() {
				continue
			}
			slots = append(slots, Slot{Facility: r.Facility, ShiftType: r.ShiftType, Date: period.Date(d)})
		}
	}
	return slots
}

// SummarizeCoverage reports which required slots have at least one
// non-cancelled entry at a facility of the same name and shift type
func SummarizeCoverage(required []Slot, entries []model.ScheduleEntry) CoverageSummary {
	type slotKey struct {
		facility string
		shift    model.ShiftType
		day      string
	}
	key := func(facility string, st model.ShiftType, d time.Time) slotKey {
		return slotKey{strings.ToLower(strings.TrimSpace(facility)), st, d.Format("2006-01-02")}
	}

	staffed := make(map[slotKey]bool)
	for _, e := range entries {
		if e.Counts() {
			staffed[key(e.SiteName, e.ShiftType, e.Date)] = true
		}
	}

	summary := CoverageSummary{Missing: []Slot{}}
	seen := make(map[slotKey]bool)
	for _, s := range required {
		k := key(s.Facility, s.ShiftType, s.Date)
		if seen[k] {
			continue
		}
		seen[k] = true
		summary.Required++
		if staffed[k] {
			summary.Covered++
		} else {
			summary.Missing = append(summary.Missing, s)
		}
	}

	sort.SliceStable(summary.Missing, func(i, j int) bool {
		return summary.Missing[i].Date.Before(summary.Missing[j].Date)
	})
	if summary.Required > 0 {
		summary.CoveragePct = round(float64(summary.Covered)/float64(summary.Required)*100, 1)
	}

	return summary
}
