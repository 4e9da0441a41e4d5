package analytics

import (
	"math"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

const (
	NameWorkloadBalance    = "workloadBalance"
	NameWeekendBurden      = "weekendBurden"
	NameConsecutiveShifts  = "consecutiveShifts"
	NameContractCompliance = "contractCompliance"
	NameSelfReported       = "selfReported"
)

// WorkloadBalanceComponent penalises distance from the ideal monthly shift count.
//
// Score: max(0, 10 - |total - 15| / 15 * 10)
type WorkloadBalanceComponent struct{}

func (WorkloadBalanceComponent) Name() string    { return NameWorkloadBalance }
func (WorkloadBalanceComponent) Weight() float64 { return WeightWorkloadBalance }

func (WorkloadBalanceComponent) Score(in SatisfactionInput) float64 {
	deviation := math.Abs(float64(in.ShiftCount.TotalShifts)-IdealMonthlyShifts) / IdealMonthlyShifts
	return math.Max(0, MaxScore-deviation*MaxScore)
}

// WeekendBurdenComponent penalises a weekend share away from 25%.
//
// Score: max(0, 10 - |weekend / max(1, total) - 0.25| * 40)
type WeekendBurdenComponent struct{}

func (WeekendBurdenComponent) Name() string    { return NameWeekendBurden }
func (WeekendBurdenComponent) Weight() float64 { return WeightWeekendBurden }

func (WeekendBurdenComponent) Score(in SatisfactionInput) float64 {
	total := math.Max(1, float64(in.ShiftCount.TotalShifts))
	ratio := float64(in.ShiftCount.TotalWeekendShifts) / total
	return math.Max(0, MaxScore-math.Abs(ratio-IdealWeekendRatio)*weekendPenaltyFactor)
}

// ConsecutiveBurdenComponent steps down as the longest run of working days grows
type ConsecutiveBurdenComponent struct{}

func (ConsecutiveBurdenComponent) Name() string    { return NameConsecutiveShifts }
func (ConsecutiveBurdenComponent) Weight() float64 { return WeightConsecutiveBurden }

func (ConsecutiveBurdenComponent) Score(in SatisfactionInput) float64 {
	switch run := in.Consecutive.MaxConsecutive; {
	case run >= 7:
		return 2
	case run >= 6:
		return 4
	case run >= 5:
		return 6
	case run >= 4:
		return 8
	case run >= 3:
		return 9
	default:
		return 10
	}
}

// ContractComplianceComponent deducts 2 points per shift over the total or weekend cap.
// Sentinel values never deduct.
type ContractComplianceComponent struct{}

func (ContractComplianceComponent) Name() string    { return NameContractCompliance }
func (ContractComplianceComponent) Weight() float64 { return WeightContractCompliance }

func (ContractComplianceComponent) Score(in SatisfactionInput) float64 {
	score := MaxScore
	if in.Compliance == nil {
		return score
	}
	for _, rem := range []model.Remaining{in.Compliance.TotalRemaining, in.Compliance.WeekendRemaining} {
		if v, ok := rem.Value(); ok && v < 0 {
			score -= compliancePenaltyPerShift * float64(-v)
		}
	}
	return math.Min(MaxScore, math.Max(0, score))
}

// SelfReportedComponent is the provider's own happiness rating, 5 when unrated
type SelfReportedComponent struct{}

func (SelfReportedComponent) Name() string    { return NameSelfReported }
func (SelfReportedComponent) Weight() float64 { return WeightSelfReported }

func (SelfReportedComponent) Score(in SatisfactionInput) float64 {
	if in.Happiness == nil {
		return DefaultHappiness
	}
	return math.Min(MaxScore, math.Max(0, float64(*in.Happiness)))
}
