package analytics

import (
	"time"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/resolver"
)

func oct(d int) time.Time {
	return time.Date(2025, time.October, d, 0, 0, 0, 0, time.UTC)
}

func entry(provider, site, shift string, date time.Time) model.ScheduleEntry {
	return model.ScheduleEntry{
		ProviderID:   resolver.ProviderID(provider),
		ProviderName: provider,
		SiteID:       resolver.SiteID(site),
		SiteName:     site,
		Date:         date,
		ShiftCode:    shift,
		ShiftType:    model.ClassifyShift(shift),
		Status:       model.StatusScheduled,
	}
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
