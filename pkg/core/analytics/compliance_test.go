package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

func TestEvaluateCompliance_NoContract(t *testing.T) {
	counts := []ShiftCount{{Provider: "Dr. Unknown", MD1: 3, TotalShifts: 3}}

	reports := EvaluateCompliance(counts, map[string]model.ContractLimit{})
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "N/A", r.ContractType)
	assert.False(t, r.HasContract)
	assert.Equal(t, 3, r.TotalShifts)
	for _, rem := range []model.Remaining{
		r.TotalLimit, r.TotalRemaining, r.WeekendLimit, r.WeekendRemaining,
		r.MD1Limit, r.MD1Remaining, r.MD2Limit, r.MD2Remaining, r.PMLimit, r.PMRemaining,
	} {
		assert.Equal(t, model.NoLimit(), rem)
		_, numeric := rem.Value()
		assert.False(t, numeric)
	}
}

func TestEvaluateCompliance_WithContract(t *testing.T) {
	counts := []ShiftCount{
		{Provider: "Dr. A", MD1: 10, MD2: 2, PM: 4, TotalShifts: 16, TotalWeekendShifts: 5},
	}
	contracts := map[string]model.ContractLimit{
		"Dr. A": {
			Provider:     "Dr. A",
			ContractType: "FT",
			Preferences:  []model.ShiftType{model.ShiftMD1, model.ShiftPM},
			TotalCap:     intPtr(15),
			WeekendCap:   intPtr(6),
			PMCap:        intPtr(3),
		},
	}

	reports := EvaluateCompliance(counts, contracts)
	require.Len(t, reports, 1)
	r := reports[0]

	assert.Equal(t, "FT", r.ContractType)
	assert.Equal(t, "MD1, PM", r.ShiftPreference)
	assert.Equal(t, model.Numeric(15), r.TotalLimit)
	assert.Equal(t, model.Numeric(-1), r.TotalRemaining)
	assert.Equal(t, model.Numeric(1), r.WeekendRemaining)
	assert.Equal(t, model.Allowed(), r.MD1Remaining)
	assert.Equal(t, model.Numeric(0), r.MD2Limit)
	assert.Equal(t, model.Numeric(-2), r.MD2Remaining)
	assert.Equal(t, model.Numeric(3), r.PMLimit)
	assert.Equal(t, model.Numeric(-1), r.PMRemaining)
	assert.Equal(t, []string{"Total", "MD2", "PM"}, r.Violations())
}

func TestEvaluateCompliance_PMNotPreferred(t *testing.T) {
	counts := []ShiftCount{{Provider: "dr. b ", PM: 2, TotalShifts: 2}}
	contracts := map[string]model.ContractLimit{
		"Dr. B": {ContractType: "IC", Preferences: []model.ShiftType{model.ShiftMD2}, TotalCap: intPtr(10), WeekendCap: nil, PMCap: intPtr(5)},
	}

	r := EvaluateCompliance(counts, contracts)[0]

	assert.True(t, r.HasContract)
	assert.Equal(t, model.NotApplicable(), r.PMLimit)
	assert.Equal(t, model.NotApplicable(), r.PMRemaining)
	assert.Equal(t, model.Numeric(0), r.MD1Remaining)
	assert.Equal(t, model.Allowed(), r.MD2Remaining)
	assert.Equal(t, model.NoLimit(), r.WeekendRemaining)
	assert.Equal(t, model.Numeric(8), r.TotalRemaining)
}
