package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

// ViolationKind names a hard scheduling rule
type ViolationKind string

const (
	ViolationNotCredentialed  ViolationKind = "Not_Credentialed"
	ViolationDoubleBooked     ViolationKind = "Multiple_Shifts_Per_Day"
	ViolationConsecutive      ViolationKind = "Max_Consecutive_Days"
	ViolationMD1PMConsecutive ViolationKind = "MD1_PM_Consecutive_Days"
)

// ConsecutiveLimits caps runs of consecutive working days per shift type, and
// of MD1 and PM days taken together. Zero means no cap.
type ConsecutiveLimits struct {
	MD1           int
	MD2           int
	PM            int
	MD1PMCombined int
}

func DefaultConsecutiveLimits() ConsecutiveLimits {
	return ConsecutiveLimits{MD1: 4, MD2: 7, PM: 3, MD1PMCombined: 4}
}

func (l ConsecutiveLimits) For(st model.ShiftType) int {
	switch st {
	case model.ShiftMD1:
		return l.MD1
	case model.ShiftMD2:
		return l.MD2
	case model.ShiftPM:
		return l.PM
	default:
		return 0
	}
}

// Violation is one breach of a hard scheduling rule
type Violation struct {
	Provider   string        `json:"Provider"`
	Kind       ViolationKind `json:"Violation"`
	ShiftType  string        `json:"Shift_Type,omitempty"`
	Facility   string        `json:"Facility,omitempty"`
	StartLabel string        `json:"Start"`
	EndLabel   string        `json:"End"`
	Days       int           `json:"Days,omitempty"`
	Limit      int           `json:"Limit,omitempty"`
	Detail     string        `json:"Detail"`
	Start      time.Time     `json:"-"`
}

// AuditSchedule checks every counted MD1/MD2/PM entry against the hard rules:
// the provider is credentialed at the facility, works at most one shift a day,
// and stays within the consecutive-day limits. Credentialing is not checked
// when no credentialing table is loaded.
// Violations are ordered by provider, then date.
func AuditSchedule(entries []model.ScheduleEntry, credentials []model.Credential, limits ConsecutiveLimits) []Violation {
	byProvider := make(map[string][]model.ScheduleEntry)
	for _, e := range entries {
		if !e.Counts() || !e.ShiftType.IsCounted() {
			continue
		}
		name := e.ProviderName
		if name == "" {
			name = e.ProviderID
		}
		byProvider[name] = append(byProvider[name], e)
	}

	creds := make(map[string]model.Credential, len(credentials))
	for _, c := range credentials {
		creds[foldName(c.Provider)] = c
	}

	violations := []Violation{}
	for _, provider := range sortedKeys(byProvider) {
		worked := byProvider[provider]
		sort.SliceStable(worked, func(i, j int) bool { return worked[i].Date.Before(worked[j].Date) })

		var found []Violation
		if len(credentials) > 0 {
			found = append(found, credentialViolations(provider, worked, creds)...)
		}
		found = append(found, doubleBookings(provider, worked)...)
		for _, st := range model.CountedShiftTypes {
			found = append(found, runViolations(provider, worked, ViolationConsecutive, string(st), limits.For(st),
				func(e model.ScheduleEntry) bool { return e.ShiftType == st })...)
		}
		found = append(found, runViolations(provider, worked, ViolationMD1PMConsecutive, "MD1/PM", limits.MD1PMCombined,
			func(e model.ScheduleEntry) bool { return e.ShiftType == model.ShiftMD1 || e.ShiftType == model.ShiftPM })...)

		sort.SliceStable(found, func(i, j int) bool { return found[i].Start.Before(found[j].Start) })
		violations = append(violations, found...)
	}

	return violations
}

func credentialViolations(provider string, worked []model.ScheduleEntry, creds map[string]model.Credential) []Violation {
	cred, ok := creds[foldName(provider)]

	var out []Violation
	for _, e := range worked {
		if ok && credentialedAt(cred, e.SiteName) {
			continue
		}
		detail := fmt.Sprintf("not credentialed for %s", e.SiteName)
		if !ok {
			detail = "no credentialing record"
		}
		label := calendar.ShortLabel(e.Date)
		out = append(out, Violation{
			Provider:   provider,
			Kind:       ViolationNotCredentialed,
			ShiftType:  string(e.ShiftType),
			Facility:   e.SiteName,
			StartLabel: label,
			EndLabel:   label,
			Days:       1,
			Detail:     detail,
			Start:      calendar.DayKey(e.Date),
		})
	}
	return out
}

func doubleBookings(provider string, worked []model.ScheduleEntry) []Violation {
	var days []time.Time
	shifts := make(map[time.Time][]string)
	for _, e := range worked {
		d := calendar.DayKey(e.Date)
		if _, seen := shifts[d]; !seen {
			days = append(days, d)
		}
		shifts[d] = append(shifts[d], e.SiteName+" "+e.ShiftCode)
	}

	var out []Violation
	for _, d := range days {
		if n := len(shifts[d]); n > 1 {
			label := calendar.ShortLabel(d)
			out = append(out, Violation{
				Provider:   provider,
				Kind:       ViolationDoubleBooked,
				StartLabel: label,
				EndLabel:   label,
				Days:       1,
				Limit:      1,
				Detail:     fmt.Sprintf("%d shifts: %s", n, strings.Join(shifts[d], ", ")),
				Start:      d,
			})
		}
	}
	return out
}

// runViolations reports each run of consecutive days on which match holds
// that is longer than limit
func runViolations(provider string, worked []model.ScheduleEntry, kind ViolationKind, shift string, limit int, match func(model.ScheduleEntry) bool) []Violation {
	if limit <= 0 {
		return nil
	}

	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, e := range worked {
		d := calendar.DayKey(e.Date)
		if match(e) && !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var out []Violation
	for start := 0; start < len(days); {
		end := start
		for end+1 < len(days) && days[end+1].Sub(days[end]) == 24*time.Hour {
			end++
		}
		if count := end - start + 1; count > limit {
			out = append(out, Violation{
				Provider:   provider,
				Kind:       kind,
				ShiftType:  shift,
				StartLabel: calendar.ShortLabel(days[start]),
				EndLabel:   calendar.ShortLabel(days[end]),
				Days:       count,
				Limit:      limit,
				Detail:     fmt.Sprintf("%d consecutive %s days, limit %d", count, shift, limit),
				Start:      days[start],
			})
		}
		start = end + 1
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
