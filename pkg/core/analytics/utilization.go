package analytics

import (
	"sort"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

// ProviderUtilization counts distinct shifts worked, where a provider covering
// several sites on the same shift and date works one shift
type ProviderUtilization struct {
	Provider        string  `json:"Provider"`
	TotalShifts     int     `json:"Total_Shifts"`
	MD1Shifts       int     `json:"MD1_Shifts"`
	MD2Shifts       int     `json:"MD2_Shifts"`
	PMShifts        int     `json:"PM_Shifts"`
	SiteAssignments int     `json:"Site_Assignments"`
	SitesPerShift   float64 `json:"Sites_Per_Shift"`
}

// UtilizationReport ranks providers by distinct shifts worked
type UtilizationReport struct {
	Providers        []ProviderUtilization `json:"Providers"`
	TotalProviders   int                   `json:"Total_Providers"`
	TotalShifts      int                   `json:"Total_Shifts"`
	TopShifts        int                   `json:"Top_Shifts"`
	ConcentrationPct float64               `json:"Concentration_Pct"`
}

// Utilization returns the topN most utilized providers and the share of all
// shifts they account for. topN <= 0 returns every provider.
func Utilization(entries []model.ScheduleEntry, topN int) UtilizationReport {
	type shiftKey struct {
		shift model.ShiftType
		day   string
	}

	var order []string
	stats := make(map[string]*ProviderUtilization)
	shifts := make(map[string]map[shiftKey]bool)

	for _, e := range entries {
		if !e.Counts() || !e.ShiftType.IsCounted() {
			continue
		}

		u, ok := stats[e.ProviderID]
		if !ok {
			u = &ProviderUtilization{Provider: e.ProviderName}
			stats[e.ProviderID] = u
			shifts[e.ProviderID] = make(map[shiftKey]bool)
			order = append(order, e.ProviderID)
		}
		u.SiteAssignments++

		key := shiftKey{e.ShiftType, e.Date.Format("2006-01-02")}
		if shifts[e.ProviderID][key] {
			continue
		}
		shifts[e.ProviderID][key] = true
		u.TotalShifts++
		switch e.ShiftType {
		case model.ShiftMD1:
			u.MD1Shifts++
		case model.ShiftMD2:
			u.MD2Shifts++
		case model.ShiftPM:
			u.PMShifts++
		}
	}

	report := UtilizationReport{TotalProviders: len(order)}
	all := make([]ProviderUtilization, 0, len(order))
	for _, id := range order {
		u := stats[id]
		u.SitesPerShift = round(float64(u.SiteAssignments)/float64(u.TotalShifts), 2)
		report.TotalShifts += u.TotalShifts
		all = append(all, *u)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].TotalShifts > all[j].TotalShifts
	})

	if topN > 0 && topN < len(all) {
		all = all[:topN]
	}
	report.Providers = all
	for _, u := range all {
		report.TopShifts += u.TotalShifts
	}
	if report.TotalShifts > 0 {
		report.ConcentrationPct = round(float64(report.TopShifts)/float64(report.TotalShifts)*100, 1)
	}

	return report
}
