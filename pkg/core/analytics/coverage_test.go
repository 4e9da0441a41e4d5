package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

func TestExpandRequirements(t *testing.T) {
	period := calendar.NewPeriod(2025, time.September)
	reqs := []model.CoverageRequirement{
		{Facility: "North", ShiftType: model.ShiftMD1, Days: []int{29, 30, 31}},
	}

	slots := ExpandRequirements(reqs, period)

	assert.Equal(t, []Slot{
		{Facility: "North", ShiftType: model.ShiftMD1, Date: period.Date(29)},
		{Facility: "North", ShiftType: model.ShiftMD1, Date: period.Date(30)},
	}, slots)
}

func TestSummarizeCoverage(t *testing.T) {
	cancelled := entry("Dr. B", "North", "PM", oct(2))
	cancelled.Status = model.StatusCancelled

	entries := []model.ScheduleEntry{
		entry("Dr. A", "north", "MD1", oct(1)),
		entry("Dr. A", "North", "MD1", oct(2)),
		cancelled,
	}
	required := []Slot{
		{Facility: "North", ShiftType: model.ShiftPM, Date: oct(2)},
		{Facility: "North", ShiftType: model.ShiftMD1, Date: oct(1)},
		{Facility: "North", ShiftType: model.ShiftMD1, Date: oct(2)},
		{Facility: "North", ShiftType: model.ShiftMD1, Date: oct(2)},
		{Facility: "North", ShiftType: model.ShiftPM, Date: oct(1)},
	}

	summary := SummarizeCoverage(required, entries)

	assert.Equal(t, 4, summary.Required)
	assert.Equal(t, 2, summary.Covered)
	assert.InDelta(t, 50.0, summary.CoveragePct, 1e-9)
	assert.Equal(t, []Slot{
		{Facility: "North", ShiftType: model.ShiftPM, Date: oct(1)},
		{Facility: "North", ShiftType: model.ShiftPM, Date: oct(2)},
	}, summary.Missing)
}
