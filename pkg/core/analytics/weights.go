package analytics

// Satisfaction component weights. They sum to 1.
const (
	WeightWorkloadBalance    = 0.40
	WeightWeekendBurden      = 0.20
	WeightConsecutiveBurden  = 0.20
	WeightContractCompliance = 0.15
	WeightSelfReported       = 0.05
)

const (
	// IdealMonthlyShifts is the shift count with no workload penalty
	IdealMonthlyShifts = 15.0

	// IdealWeekendRatio is the weekend share of shifts with no penalty
	IdealWeekendRatio = 0.25

	weekendPenaltyFactor = 40.0

	// Each shift over the total or weekend cap costs this many compliance points
	compliancePenaltyPerShift = 2.0

	DefaultHappiness = 5
	MaxScore         = 10.0
)
