package analytics

import (
	"github.com/shopspring/decimal"
)

// SatisfactionInput is everything known about one provider for scoring
type SatisfactionInput struct {
	ShiftCount  ShiftCount
	Volume      *VolumeData // carried for callers, not scored
	Compliance  *ComplianceReport
	Consecutive ConsecutiveResult
	Happiness   *int // self-reported 1..10, nil when never rated
}

// Component is one weighted part of the satisfaction score
type Component interface {
	// Name is the key the sub-score is reported under
	Name() string

	// Score returns a value on the 0-10 scale
	Score(in SatisfactionInput) float64

	Weight() float64
}

// SubScore is a component's raw score and its weighted contribution
type SubScore struct {
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
}

// SatisfactionScore is the composite score and its five components
type SatisfactionScore struct {
	Provider           string   `json:"provider"`
	OverallScore       float64  `json:"overallScore"`
	WorkloadBalance    SubScore `json:"workloadBalance"`
	WeekendBurden      SubScore `json:"weekendBurden"`
	ConsecutiveShifts  SubScore `json:"consecutiveShifts"`
	ContractCompliance SubScore `json:"contractCompliance"`
	SelfReported       SubScore `json:"selfReported"`
}

// DefaultComponents returns the five scoring components in report order
func DefaultComponents() []Component {
	return []Component{
		WorkloadBalanceComponent{},
		WeekendBurdenComponent{},
		ConsecutiveBurdenComponent{},
		ContractComplianceComponent{},
		SelfReportedComponent{},
	}
}

// CalculateSatisfactionScore combines the components into one score.
// Sub-scores are shown to 1 decimal place and weighted values to 2; the
// overall score is the unrounded weighted sum rounded to 1 decimal place.
func CalculateSatisfactionScore(in SatisfactionInput) SatisfactionScore {
	out := SatisfactionScore{Provider: in.ShiftCount.Provider}
	slots := map[string]*SubScore{
		NameWorkloadBalance:    &out.WorkloadBalance,
		NameWeekendBurden:      &out.WeekendBurden,
		NameConsecutiveShifts:  &out.ConsecutiveShifts,
		NameContractCompliance: &out.ContractCompliance,
		NameSelfReported:       &out.SelfReported,
	}

	total := 0.0
	for _, c := range DefaultComponents() {
		raw := c.Score(in)
		weighted := raw * c.Weight()
		total += weighted

		if slot, ok := slots[c.Name()]; ok {
			*slot = SubScore{
				Score:    round(raw, 1),
				Weight:   c.Weight(),
				Weighted: round(weighted, 2),
			}
		}
	}
	out.OverallScore = round(total, 1)

	return out
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
