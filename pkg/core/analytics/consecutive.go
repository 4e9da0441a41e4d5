package analytics

import (
	"sort"
	"time"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

// ConsecutiveGroup is a run of two or more consecutive working days
type ConsecutiveGroup struct {
	StartLabel string    `json:"startLabel"`
	EndLabel   string    `json:"endLabel"`
	Count      int       `json:"count"`
	Start      time.Time `json:"-"`
	End        time.Time `json:"-"`
}

// ConsecutiveResult describes a provider's runs of consecutive working days
type ConsecutiveResult struct {
	Provider          string             `json:"provider"`
	MaxConsecutive    int                `json:"maxConsecutive"`
	ConsecutiveGroups []ConsecutiveGroup `json:"consecutiveGroups"`
	TotalDays         int                `json:"totalDays"`
	WorkDays          int                `json:"workDays"`
}

// AnalyzeConsecutive finds maximal runs of consecutive calendar days on which
// the provider (matched by name or ID) works any shift. Runs shorter than two
// days are not reported and do not count towards MaxConsecutive.
// totalDays is the number of days in the source sheet; when it is not known
// the distinct dates across all entries are used.
func AnalyzeConsecutive(entries []model.ScheduleEntry, provider string, totalDays int) ConsecutiveResult {
	worked := make(map[time.Time]bool)
	allDays := make(map[time.Time]bool)

	for _, e := range entries {
		if !e.Counts() {
			continue
		}
		d := calendar.DayKey(e.Date)
		allDays[d] = true
		if e.ProviderName == provider || e.ProviderID == provider {
			worked[d] = true
		}
	}

	if totalDays <= 0 {
		totalDays = len(allDays)
	}

	days := make([]time.Time, 0, len(worked))
	for d := range worked {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	result := ConsecutiveResult{
		Provider:          provider,
		ConsecutiveGroups: []ConsecutiveGroup{},
		TotalDays:         totalDays,
		WorkDays:          len(days),
	}

	for start := 0; start < len(days); {
		end := start
		for end+1 < len(days) && days[end+1].Sub(days[end]) == 24*time.Hour {
			end++
		}

		if count := end - start + 1; count >= 2 {
			result.ConsecutiveGroups = append(result.ConsecutiveGroups, ConsecutiveGroup{
				StartLabel: calendar.ShortLabel(days[start]),
				EndLabel:   calendar.ShortLabel(days[end]),
				Count:      count,
				Start:      days[start],
				End:        days[end],
			})
			if count > result.MaxConsecutive {
				result.MaxConsecutive = count
			}
		}

		start = end + 1
	}

	return result
}
