package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

func TestAnalyzeConsecutive(t *testing.T) {
	var entries []model.ScheduleEntry
	for _, d := range []int{1, 2, 3, 5, 6, 9} {
		entries = append(entries, entry("Dr. A", "North", "MD1", oct(d)))
	}
	// a second site on the same day is still one working day
	entries = append(entries, entry("Dr. A", "South", "PM", oct(2)))
	entries = append(entries, entry("Dr. B", "North", "MD1", oct(4)))

	result := AnalyzeConsecutive(entries, "Dr. A", 31)

	assert.Equal(t, 3, result.MaxConsecutive)
	assert.Equal(t, 6, result.WorkDays)
	assert.Equal(t, 31, result.TotalDays)
	assert.Equal(t, []ConsecutiveGroup{
		{StartLabel: "Oct 1", EndLabel: "Oct 3", Count: 3, Start: oct(1), End: oct(3)},
		{StartLabel: "Oct 5", EndLabel: "Oct 6", Count: 2, Start: oct(5), End: oct(6)},
	}, result.ConsecutiveGroups)
}

func TestAnalyzeConsecutive_NoRuns(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry("Dr. A", "North", "MD1", oct(1)),
		entry("Dr. A", "North", "MD1", oct(3)),
		entry("Dr. B", "North", "MD1", oct(2)),
	}

	result := AnalyzeConsecutive(entries, "prov-dr-a", 0)

	assert.Equal(t, 0, result.MaxConsecutive)
	assert.Empty(t, result.ConsecutiveGroups)
	assert.NotNil(t, result.ConsecutiveGroups)
	assert.Equal(t, 2, result.WorkDays)
	assert.Equal(t, 3, result.TotalDays)
}

func TestAnalyzeConsecutive_UnknownProvider(t *testing.T) {
	result := AnalyzeConsecutive([]model.ScheduleEntry{entry("Dr. A", "North", "MD1", oct(1))}, "Dr. Z", 31)

	assert.Equal(t, 0, result.WorkDays)
	assert.Equal(t, 0, result.MaxConsecutive)
}
