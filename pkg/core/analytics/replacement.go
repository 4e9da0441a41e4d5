package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

const noContractPreference = "No contract"

// ReplacementQuery describes a cancelled shift needing cover
type ReplacementQuery struct {
	Facility  string
	ShiftType model.ShiftType
	Date      time.Time
	Weekend   bool
}

// NewReplacementQuery validates the shift type and classifies the date with the weekend rule
func NewReplacementQuery(facility string, shiftType string, date time.Time, weekendRule string) (ReplacementQuery, error) {
	st, ok := model.ParseShiftType(shiftType)
	if !ok {
		return ReplacementQuery{}, &ShiftTypeError{ShiftType: shiftType}
	}

	weekendDays, err := calendar.PeriodOf(date).WeekendDays(weekendRule)
	if err != nil {
		return ReplacementQuery{}, fmt.Errorf("failed to classify cancellation date: %w", err)
	}

	return ReplacementQuery{
		Facility:  strings.TrimSpace(facility),
		ShiftType: st,
		Date:      calendar.DayKey(date),
		Weekend:   weekendDays[date.Day()],
	}, nil
}

// ReplacementProvider is one ranked candidate to cover a cancelled shift
type ReplacementProvider struct {
	Rank            int      `json:"Rank"`
	Provider        string   `json:"Provider"`
	ShiftPreference string   `json:"Shift_Preference"`
	Volume          *float64 `json:"Volume"` // nil when the provider has no volume record
}

// RankReplacements suggests who could cover a cancelled shift. Candidates must
// be credentialed at the facility and have capacity left in the relevant field
// (weekend capacity on weekends, otherwise the shift type's). They are ranked
// by their current volume for the shift type, lowest first; candidates with
// no volume record rank last. Ties keep credentialing table order.
func RankReplacements(
	q ReplacementQuery,
	credentials []model.Credential,
	compliance []ComplianceReport,
	volumes []VolumeData,
) ([]ReplacementProvider, error) {
	if !q.ShiftType.IsCounted() {
		return nil, &ShiftTypeError{ShiftType: string(q.ShiftType)}
	}

	reports := make(map[string]ComplianceReport, len(compliance))
	for _, r := range compliance {
		reports[foldName(r.Provider)] = r
	}
	volumeByProvider := make(map[string]VolumeData, len(volumes))
	for _, v := range volumes {
		volumeByProvider[foldName(v.Provider)] = v
	}

	type candidate struct {
		ReplacementProvider
		sortKey float64
	}
	var candidates []candidate
	seen := make(map[string]bool)

	for _, cred := range credentials {
		key := foldName(cred.Provider)
		if seen[key] || !credentialedAt(cred, q.Facility) {
			continue
		}
		seen[key] = true

		preference := noContractPreference
		remaining := model.NoLimit()
		if r, ok := reports[key]; ok {
			if r.HasContract {
				preference = r.ShiftPreference
			}
			if q.Weekend {
				remaining = r.WeekendRemaining
			} else {
				remaining = r.RemainingFor(q.ShiftType)
			}
		}
		if !remaining.HasCapacity() {
			continue
		}

		c := candidate{
			ReplacementProvider: ReplacementProvider{
				Provider:        cred.Provider,
				ShiftPreference: preference,
			},
			sortKey: math.Inf(1),
		}
		if v, ok := volumeByProvider[key]; ok {
			vol := v.For(q.ShiftType)
			c.Volume = &vol
			c.sortKey = vol
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sortKey < candidates[j].sortKey
	})

	result := make([]ReplacementProvider, len(candidates))
	for i, c := range candidates {
		c.Rank = i + 1
		result[i] = c.ReplacementProvider
	}
	return result, nil
}

func credentialedAt(c model.Credential, facility string) bool {
	target := foldName(facility)
	for _, f := range c.Facilities {
		if foldName(f) == target {
			return true
		}
	}
	return false
}

func foldName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
