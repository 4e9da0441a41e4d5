package analytics

import (
	"sort"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

// ShiftCount tallies one provider's shifts in a reporting month
type ShiftCount struct {
	ProviderID         string `json:"Provider_ID"`
	Provider           string `json:"Provider"`
	MD1                int    `json:"MD1"`
	MD1Weekday         int    `json:"MD1_Weekday"`
	MD1Weekend         int    `json:"MD1_Weekend"`
	MD2                int    `json:"MD2"`
	MD2Weekday         int    `json:"MD2_Weekday"`
	MD2Weekend         int    `json:"MD2_Weekend"`
	PM                 int    `json:"PM"`
	PMWeekday          int    `json:"PM_Weekday"`
	PMWeekend          int    `json:"PM_Weekend"`
	TotalShifts        int    `json:"Total_Shifts"`
	TotalWeekendShifts int    `json:"Total_Weekend_Shifts"`
}

func (c *ShiftCount) add(st model.ShiftType, weekend bool) {
	var total, weekday, weekendCount *int
	switch st {
	case model.ShiftMD1:
		total, weekday, weekendCount = &c.MD1, &c.MD1Weekday, &c.MD1Weekend
	case model.ShiftMD2:
		total, weekday, weekendCount = &c.MD2, &c.MD2Weekday, &c.MD2Weekend
	case model.ShiftPM:
		total, weekday, weekendCount = &c.PM, &c.PMWeekday, &c.PMWeekend
	default:
		return
	}

	*total++
	c.TotalShifts++
	if weekend {
		*weekendCount++
		c.TotalWeekendShifts++
	} else {
		*weekday++
	}
}

// For returns the count for a shift type
func (c ShiftCount) For(st model.ShiftType) int {
	switch st {
	case model.ShiftMD1:
		return c.MD1
	case model.ShiftMD2:
		return c.MD2
	case model.ShiftPM:
		return c.PM
	default:
		return 0
	}
}

// CountShifts tallies entries inside the period by shift type and weekday/weekend.
// weekendDays holds the weekend days of the month. Entries of type Other,
// cancelled entries and entries outside the period are not counted.
func CountShifts(entries []model.ScheduleEntry, period calendar.Period, weekendDays map[int]bool) []ShiftCount {
	var counts []*ShiftCount
	byProvider := make(map[string]*ShiftCount)

	for _, e := range entries {
		if !e.Counts() || !e.ShiftType.IsCounted() || !period.Contains(e.Date) {
			continue
		}

		c, ok := byProvider[e.ProviderID]
		if !ok {
			c = &ShiftCount{ProviderID: e.ProviderID, Provider: e.ProviderName}
			byProvider[e.ProviderID] = c
			counts = append(counts, c)
		}
		c.add(e.ShiftType, weekendDays[e.Date.Day()])
	}

	result := make([]ShiftCount, len(counts))
	for i, c := range counts {
		result[i] = *c
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalShifts > result[j].TotalShifts
	})

	return result
}

// FindShiftCount looks up a provider's count by display name or ID
func FindShiftCount(counts []ShiftCount, provider string) (ShiftCount, bool) {
	for _, c := range counts {
		if c.Provider == provider || c.ProviderID == provider {
			return c, true
		}
	}
	return ShiftCount{}, false
}
