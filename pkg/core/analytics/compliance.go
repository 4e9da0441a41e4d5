package analytics

import (
	"strings"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

const noContract = "N/A"

// ComplianceReport compares a provider's shifts with their contract.
// Limits and remaining values are numbers or one of the sentinels.
type ComplianceReport struct {
	Provider         string          `json:"Provider"`
	ContractType     string          `json:"Contract_Type"`
	ShiftPreference  string          `json:"Shift_Preference"`
	TotalShifts      int             `json:"Total_Shifts"`
	TotalLimit       model.Remaining `json:"Total_Limit"`
	TotalRemaining   model.Remaining `json:"Total_Remaining"`
	WeekendShifts    int             `json:"Weekend_Shifts"`
	WeekendLimit     model.Remaining `json:"Weekend_Limit"`
	WeekendRemaining model.Remaining `json:"Weekend_Remaining"`
	MD1Shifts        int             `json:"MD1_Shifts"`
	MD1Limit         model.Remaining `json:"MD1_Limit"`
	MD1Remaining     model.Remaining `json:"MD1_Remaining"`
	MD2Shifts        int             `json:"MD2_Shifts"`
	MD2Limit         model.Remaining `json:"MD2_Limit"`
	MD2Remaining     model.Remaining `json:"MD2_Remaining"`
	PMShifts         int             `json:"PM_Shifts"`
	PMLimit          model.Remaining `json:"PM_Limit"`
	PMRemaining      model.Remaining `json:"PM_Remaining"`
	HasContract      bool            `json:"-"`
}

// RemainingFor returns the remaining capacity for a shift type
func (r ComplianceReport) RemainingFor(st model.ShiftType) model.Remaining {
	switch st {
	case model.ShiftMD1:
		return r.MD1Remaining
	case model.ShiftMD2:
		return r.MD2Remaining
	case model.ShiftPM:
		return r.PMRemaining
	default:
		return model.NotApplicable()
	}
}

// Violations lists the fields whose remaining value is negative
func (r ComplianceReport) Violations() []string {
	var v []string
	for _, f := range []struct {
		name string
		rem  model.Remaining
	}{
		{"Total", r.TotalRemaining},
		{"Weekend", r.WeekendRemaining},
		{"MD1", r.MD1Remaining},
		{"MD2", r.MD2Remaining},
		{"PM", r.PMRemaining},
	} {
		if f.rem.IsNegative() {
			v = append(v, f.name)
		}
	}
	return v
}

// contractIndex looks contracts up by exact provider name, then case-insensitively
type contractIndex struct {
	exact  map[string]model.ContractLimit
	folded map[string]model.ContractLimit
}

func newContractIndex(contracts map[string]model.ContractLimit) contractIndex {
	idx := contractIndex{
		exact:  contracts,
		folded: make(map[string]model.ContractLimit, len(contracts)),
	}
	for name, c := range contracts {
		idx.folded[strings.ToLower(strings.TrimSpace(name))] = c
	}
	return idx
}

func (idx contractIndex) lookup(provider string) (model.ContractLimit, bool) {
	if c, ok := idx.exact[provider]; ok {
		return c, true
	}
	c, ok := idx.folded[strings.ToLower(strings.TrimSpace(provider))]
	return c, ok
}

// EvaluateCompliance builds a compliance report for every counted provider.
// Providers without a contract get "No limit" throughout. Over-limit values
// are reported as negative numbers, never clamped.
func EvaluateCompliance(counts []ShiftCount, contracts map[string]model.ContractLimit) []ComplianceReport {
	idx := newContractIndex(contracts)
	reports := make([]ComplianceReport, 0, len(counts))

	for _, c := range counts {
		r := ComplianceReport{
			Provider:      c.Provider,
			TotalShifts:   c.TotalShifts,
			WeekendShifts: c.TotalWeekendShifts,
			MD1Shifts:     c.MD1,
			MD2Shifts:     c.MD2,
			PMShifts:      c.PM,
		}

		contract, ok := idx.lookup(c.Provider)
		if !ok {
			r.ContractType = noContract
			r.ShiftPreference = noContract
			for _, f := range []*model.Remaining{
				&r.TotalLimit, &r.TotalRemaining,
				&r.WeekendLimit, &r.WeekendRemaining,
				&r.MD1Limit, &r.MD1Remaining,
				&r.MD2Limit, &r.MD2Remaining,
				&r.PMLimit, &r.PMRemaining,
			} {
				*f = model.NoLimit()
			}
			reports = append(reports, r)
			continue
		}

		r.HasContract = true
		r.ContractType = contract.ContractType
		r.ShiftPreference = PreferenceSummary(contract.Preferences)

		r.TotalLimit, r.TotalRemaining = capped(contract.TotalCap, c.TotalShifts)
		r.WeekendLimit, r.WeekendRemaining = capped(contract.WeekendCap, c.TotalWeekendShifts)
		r.MD1Limit, r.MD1Remaining = preferred(contract.Prefers(model.ShiftMD1), c.MD1)
		r.MD2Limit, r.MD2Remaining = preferred(contract.Prefers(model.ShiftMD2), c.MD2)

		if contract.Prefers(model.ShiftPM) {
			r.PMLimit, r.PMRemaining = capped(contract.PMCap, c.PM)
		} else {
			r.PMLimit, r.PMRemaining = model.NotApplicable(), model.NotApplicable()
		}

		reports = append(reports, r)
	}

	return reports
}

// capped computes limit and remaining for a numeric cap. An absent cap has no limit.
func capped(limit *int, actual int) (model.Remaining, model.Remaining) {
	if limit == nil {
		return model.NoLimit(), model.NoLimit()
	}
	return model.Numeric(*limit), model.Numeric(*limit - actual)
}

// preferred handles MD1/MD2: unlimited when preferred, otherwise a cap of zero
func preferred(ok bool, actual int) (model.Remaining, model.Remaining) {
	if ok {
		return model.Allowed(), model.Allowed()
	}
	return model.Numeric(0), model.Numeric(-actual)
}

// PreferenceSummary renders preferences as "MD1, PM"
func PreferenceSummary(prefs []model.ShiftType) string {
	if len(prefs) == 0 {
		return "None"
	}
	parts := make([]string, len(prefs))
	for i, p := range prefs {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}

// FindCompliance looks up a provider's report by name
func FindCompliance(reports []ComplianceReport, provider string) (ComplianceReport, bool) {
	for _, r := range reports {
		if r.Provider == provider {
			return r, true
		}
	}
	return ComplianceReport{}, false
}
