package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/resolver"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/grid"
)

func TestCountShifts_EndToEnd(t *testing.T) {
	// August 2025: the 1st is a Friday, the 2nd a Saturday
	period := calendar.NewPeriod(2025, time.August)
	rows := [][]interface{}{
		{"Day", "SiteA - MD1", "SiteA - PM"},
		{1, "Dr. Smith", "UNCOVERED"},
		{2, "Dr. Smith, Dr. Jones (Gap)", "Dr. Jones"},
	}

	res, err := grid.Normalize("Schedule", rows, grid.Options{DefaultPeriod: period})
	require.NoError(t, err)
	schedule := resolver.Resolve(res.Facts)

	weekend, err := period.WeekendDays(calendar.DefaultWeekendRule)
	require.NoError(t, err)

	counts := CountShifts(schedule.Entries, period, weekend)
	require.Len(t, counts, 2)

	smith, ok := FindShiftCount(counts, "Dr. Smith")
	require.True(t, ok)
	assert.Equal(t, 1, smith.MD1Weekday)
	assert.Equal(t, 1, smith.MD1Weekend)
	assert.Equal(t, 2, smith.MD1)
	assert.Equal(t, 2, smith.TotalShifts)

	jones, ok := FindShiftCount(counts, "Dr. Jones")
	require.True(t, ok)
	assert.Equal(t, 1, jones.MD1Weekend)
	assert.Equal(t, 1, jones.PMWeekend)
	assert.Equal(t, 2, jones.TotalShifts)
	assert.Equal(t, 2, jones.TotalWeekendShifts)

	for _, e := range schedule.Entries {
		if e.ProviderName == "Dr. Jones" && e.ShiftType == model.ShiftMD1 {
			assert.Equal(t, resolver.GapNote, e.Notes)
		}
	}
}

func TestCountShifts_Conservation(t *testing.T) {
	period := calendar.NewPeriod(2025, time.October)
	weekend, err := period.WeekendDays("")
	require.NoError(t, err)

	var entries []model.ScheduleEntry
	shifts := []string{"MD1", "MD2", "PM", "MD1 AM"}
	for d := 1; d <= 31; d++ {
		entries = append(entries, entry("Dr. A", "North", shifts[d%len(shifts)], oct(d)))
		if d%3 == 0 {
			entries = append(entries, entry("Dr. B", "South", shifts[(d+1)%len(shifts)], oct(d)))
		}
	}

	for _, c := range CountShifts(entries, period, weekend) {
		assert.Equal(t, c.MD1, c.MD1Weekday+c.MD1Weekend, c.Provider)
		assert.Equal(t, c.MD2, c.MD2Weekday+c.MD2Weekend, c.Provider)
		assert.Equal(t, c.PM, c.PMWeekday+c.PMWeekend, c.Provider)
		assert.Equal(t, c.TotalShifts, c.MD1+c.MD2+c.PM, c.Provider)
		assert.Equal(t, c.TotalWeekendShifts, c.MD1Weekend+c.MD2Weekend+c.PMWeekend, c.Provider)
	}
}

func TestCountShifts_SkipsUncountedEntries(t *testing.T) {
	period := calendar.NewPeriod(2025, time.October)
	cancelled := entry("Dr. A", "North", "MD1", oct(2))
	cancelled.Status = model.StatusCancelled

	entries := []model.ScheduleEntry{
		entry("Dr. A", "North", "MD1", oct(1)),
		cancelled,
		entry("Dr. A", "North", "Night", oct(3)),
		entry("Dr. A", "North", "MD1", time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)),
	}

	counts := CountShifts(entries, period, map[int]bool{})
	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0].TotalShifts)
}

func TestCountShifts_StableSortByTotal(t *testing.T) {
	period := calendar.NewPeriod(2025, time.October)
	entries := []model.ScheduleEntry{
		entry("Dr. First", "North", "MD1", oct(1)),
		entry("Dr. Second", "North", "MD2", oct(1)),
		entry("Dr. Busy", "North", "PM", oct(1)),
		entry("Dr. Busy", "North", "PM", oct(2)),
		entry("Dr. Third", "North", "MD1", oct(2)),
	}

	counts := CountShifts(entries, period, map[int]bool{})

	var names []string
	for _, c := range counts {
		names = append(names, c.Provider)
	}
	assert.Equal(t, []string{"Dr. Busy", "Dr. First", "Dr. Second", "Dr. Third"}, names)
}
