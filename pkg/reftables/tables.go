package reftables

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

var volumeColumns = []columnSpec{
	{field: "facility", aliases: []string{"facility_name", "Facility", "Site"}, required: true},
	{field: "md1", aliases: []string{"Volume_MD1", "MD1"}},
	{field: "md2", aliases: []string{"Volume_MD2", "MD2"}},
	{field: "pm", aliases: []string{"Volume_PM", "PM"}},
}

// ParseVolumes reads the facility volume table. "NC" and other non-numeric
// cells become nil volumes.
func ParseVolumes(raw [][]interface{}) ([]model.FacilityVolume, error) {
	t, err := locate("volume", raw, volumeColumns)
	if err != nil {
		return nil, err
	}

	var volumes []model.FacilityVolume
	for _, row := range t.dataRows() {
		facility := t.field(row, "facility")
		if facility == "" {
			continue
		}
		volumes = append(volumes, model.FacilityVolume{
			Facility: facility,
			MD1:      parseNumber(t.raw(row, "md1")),
			MD2:      parseNumber(t.raw(row, "md2")),
			PM:       parseNumber(t.raw(row, "pm")),
		})
	}
	return volumes, nil
}

var contractColumns = []columnSpec{
	{field: "provider", aliases: []string{"Provider_Name", "Provider"}, required: true},
	{field: "type", aliases: []string{"Contract_type"}},
	{field: "preference", aliases: []string{"Shift_preference", "Shift preferences"}, required: true},
	{field: "total", aliases: []string{"Total_shift_count", "Total shifts"}},
	{field: "weekend", aliases: []string{"Weekend_shift_count", "Weekend shifts"}},
	{field: "pm", aliases: []string{"PM_shift_count", "PM shifts"}},
}

// ParseContracts reads the contract table keyed by provider name.
// Blank or unreadable caps are left nil, meaning no limit.
func ParseContracts(raw [][]interface{}) (map[string]model.ContractLimit, error) {
	t, err := locate("contract", raw, contractColumns)
	if err != nil {
		return nil, err
	}

	contracts := make(map[string]model.ContractLimit)
	for _, row := range t.dataRows() {
		provider := t.field(row, "provider")
		if provider == "" {
			continue
		}

		var prefs []model.ShiftType
		for _, p := range splitList(t.field(row, "preference")) {
			if st, ok := model.ParseShiftType(p); ok {
				prefs = append(prefs, st)
			}
		}

		contracts[provider] = model.ContractLimit{
			Provider:     provider,
			ContractType: t.field(row, "type"),
			Preferences:  prefs,
			TotalCap:     parseCount(t.raw(row, "total")),
			WeekendCap:   parseCount(t.raw(row, "weekend")),
			PMCap:        parseCount(t.raw(row, "pm")),
		}
	}
	return contracts, nil
}

var credentialColumns = []columnSpec{
	{field: "provider", aliases: []string{"Provider", "Provider_Name"}, required: true},
	{field: "facilities", aliases: []string{"Credentialed Facilities", "Facilities"}, required: true},
}

// ParseCredentials reads the credentialing table in sheet order
func ParseCredentials(raw [][]interface{}) ([]model.Credential, error) {
	t, err := locate("credentialing", raw, credentialColumns)
	if err != nil {
		return nil, err
	}

	var creds []model.Credential
	for _, row := range t.dataRows() {
		provider := t.field(row, "provider")
		if provider == "" {
			continue
		}
		creds = append(creds, model.Credential{
			Provider:   provider,
			Facilities: splitList(t.field(row, "facilities")),
		})
	}
	return creds, nil
}

var coverageColumns = []columnSpec{
	{field: "facility", aliases: []string{"Facility", "Facility_Name", "Site"}, required: true},
	{field: "shift", aliases: []string{"Shift", "Shift_Type"}, required: true},
	{field: "days", aliases: []string{"Coverage dates", "Coverage", "Days"}, required: true},
}

// ParseCoverage reads the facility coverage table. The facility column is
// only filled on the first row of each group, so it is carried down.
func ParseCoverage(raw [][]interface{}) ([]model.CoverageRequirement, error) {
	t, err := locate("coverage", raw, coverageColumns)
	if err != nil {
		return nil, err
	}

	var reqs []model.CoverageRequirement
	facility := ""
	for _, row := range t.dataRows() {
		if f := t.field(row, "facility"); f != "" {
			facility = f
		}
		st, ok := model.ParseShiftType(t.field(row, "shift"))
		if facility == "" || !ok {
			continue
		}
		days := ParseDayRanges(t.field(row, "days"))
		if len(days) == 0 {
			continue
		}
		reqs = append(reqs, model.CoverageRequirement{Facility: facility, ShiftType: st, Days: days})
	}
	return reqs, nil
}

var dayRangeRe = regexp.MustCompile(`^(\d{1,2})\s*-+\s*(\d{1,2})$`)

// ParseDayRanges expands "1-31", "1--31" and "4-5, 11-12, 20" into sorted,
// distinct days of the month. Malformed parts are skipped.
func ParseDayRanges(s string) []int {
	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if m := dayRangeRe.FindStringSubmatch(part); m != nil {
			from, _ := strconv.Atoi(m[1])
			to, _ := strconv.Atoi(m[2])
			for d := from; d <= to; d++ {
				if d >= 1 && d <= 31 {
					seen[d] = true
				}
			}
			continue
		}
		if d, err := strconv.Atoi(part); err == nil && d >= 1 && d <= 31 {
			seen[d] = true
		}
	}

	days := make([]int, 0, len(seen))
	for d := 1; d <= 31; d++ {
		if seen[d] {
			days = append(days, d)
		}
	}
	return days
}
