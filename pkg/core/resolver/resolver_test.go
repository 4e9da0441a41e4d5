package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/grid"
)

func day(d int) time.Time {
	return time.Date(2025, time.October, d, 0, 0, 0, 0, time.UTC)
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Dr. Smith", "dr-smith"},
		{"  Dr.  O'Brien-Lee ", "dr-obrien-lee"},
		{"St. Mary's - North", "st-marys-north"},
		{"NURSE   KIM", "nurse-kim"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slug(tt.in))
		})
	}
}

func TestInferSpecialty(t *testing.T) {
	assert.Equal(t, "Physician", InferSpecialty("Dr. Smith"))
	assert.Equal(t, "Nursing", InferSpecialty("Nurse Kim"))
	assert.Equal(t, "Nursing", InferSpecialty("Pat Lee RN"))
	assert.Equal(t, "General Practice", InferSpecialty("Brunhilde"))
	assert.Equal(t, "Technical", InferSpecialty("Rad Tech Jo"))
	assert.Equal(t, "General Practice", InferSpecialty("Alex Morgan"))
}

func TestInferSiteType(t *testing.T) {
	assert.Equal(t, "Primary Care", InferSiteType("MD1"))
	assert.Equal(t, "Specialty Care", InferSiteType("MD2"))
	assert.Equal(t, "Practice Management", InferSiteType("PM"))
	assert.Equal(t, "Healthcare Facility", InferSiteType("Night"))
}

func TestResolve(t *testing.T) {
	facts := []grid.Fact{
		{Provider: "Dr. Smith", Site: "SiteA", ShiftCode: "MD1", Date: day(1)},
		{Provider: "Dr. Smith", Site: "SiteA", ShiftCode: "MD1", Date: day(2)},
		{Provider: "Dr. Jones", Site: "SiteA", ShiftCode: "MD1", Date: day(2), Gap: true},
		{Provider: "Dr. Jones", Site: "SiteB", ShiftCode: "PM", Date: day(2), Status: "cancelled"},
	}

	s := Resolve(facts)

	require.Len(t, s.Providers, 2)
	assert.Equal(t, model.Provider{ID: "prov-dr-smith", Name: "Dr. Smith", Specialty: "Physician"}, s.Providers[0])
	assert.Equal(t, "prov-dr-jones", s.Providers[1].ID)

	require.Len(t, s.Sites, 2)
	assert.Equal(t, model.Site{ID: "site-sitea", Name: "SiteA", Type: "Primary Care"}, s.Sites[0])
	assert.Equal(t, "Practice Management", s.Sites[1].Type)

	require.Len(t, s.Entries, 4)
	assert.Equal(t, "Dr. Smith", s.Entries[0].ProviderName)
	assert.Equal(t, model.ShiftMD1, s.Entries[0].ShiftType)
	assert.Equal(t, model.StatusScheduled, s.Entries[0].Status)
	assert.Equal(t, GapNote, s.Entries[2].Notes)
	assert.Equal(t, model.StatusCancelled, s.Entries[3].Status)
	assert.Equal(t, model.ShiftPM, s.Entries[3].ShiftType)
}

func TestResolve_Idempotent(t *testing.T) {
	facts := []grid.Fact{
		{Provider: "Dr. Smith", Site: "SiteA", ShiftCode: "MD1", Date: day(1)},
		{Provider: "Dr. Jones", Site: "SiteA", ShiftCode: "PM", Date: day(1)},
	}

	first := Resolve(facts)
	second := Resolve(facts)

	assert.Equal(t, first, second)
	assert.Equal(t, EntryID("prov-dr-smith", "site-sitea", "2025-10-01", "MD1"), first.Entries[0].ID)
}

func TestResolve_MergesDuplicateFacts(t *testing.T) {
	facts := []grid.Fact{
		{Provider: "Dr. Smith", Site: "SiteA", ShiftCode: "MD1", Date: day(3)},
		{Provider: "dr smith", Site: "sitea", ShiftCode: "MD1", Date: day(3), Gap: true},
	}

	s := Resolve(facts)

	require.Len(t, s.Providers, 1)
	assert.Equal(t, "Dr. Smith", s.Providers[0].Name)
	require.Len(t, s.Entries, 1)
	assert.Equal(t, GapNote, s.Entries[0].Notes)
}

func TestEntryID_DistinguishesShiftCode(t *testing.T) {
	a := EntryID("prov-a", "site-a", "2025-10-01", "MD1")
	b := EntryID("prov-a", "site-a", "2025-10-01", "MD2")

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
