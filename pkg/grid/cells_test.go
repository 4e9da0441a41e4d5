package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSplitProviders(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected []providerToken
	}{
		{"single", "Dr. Smith", []providerToken{{name: "Dr. Smith"}}},
		{"comma", "Dr. Smith, Dr. Jones", []providerToken{{name: "Dr. Smith"}, {name: "Dr. Jones"}}},
		{"slash and semicolon", "A/B; C", []providerToken{{name: "A"}, {name: "B"}, {name: "C"}}},
		{"ampersand", "Dr. Rao & Dr. Ng", []providerToken{{name: "Dr. Rao"}, {name: "Dr. Ng"}}},
		{"word and", "Dr. Rao AND Dr. Ng", []providerToken{{name: "Dr. Rao"}, {name: "Dr. Ng"}}},
		{"and inside a name", "Dr. Alexander", []providerToken{{name: "Dr. Alexander"}}},
		{"gap marker", "Dr. Jones (Gap)", []providerToken{{name: "Dr. Jones", gap: true}}},
		{"gap marker lower case", "Dr. Jones (gap) ", []providerToken{{name: "Dr. Jones", gap: true}}},
		{"placeholders", "UNCOVERED, open, TBD, None, off", nil},
		{"mixed placeholder", "Dr. A, TBD", []providerToken{{name: "Dr. A"}}},
		{"collapses inner whitespace", "Dr.   Smith", []providerToken{{name: "Dr. Smith"}}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitProviders(tt.cell))
		})
	}
}

func TestSplitSiteShift(t *testing.T) {
	site, shift, ok := splitSiteShift("Mercy - West - MD1")
	assert.True(t, ok)
	assert.Equal(t, "Mercy - West", site)
	assert.Equal(t, "MD1", shift)

	_, _, ok = splitSiteShift("Mercy-MD1")
	assert.False(t, ok)

	_, _, ok = splitSiteShift(" - MD1")
	assert.False(t, ok)
}

func TestParseDateCell(t *testing.T) {
	tests := []struct {
		name    string
		cell    interface{}
		full    time.Time
		day     int
		resolve bool
	}{
		{"bare int", 7, time.Time{}, 7, true},
		{"bare float", float64(31), time.Time{}, 31, true},
		{"bare string", "12", time.Time{}, 12, true},
		{"excel serial", float64(45931.5), date(2025, 10, 1), 0, true},
		{"iso", "2025-10-03", date(2025, 10, 3), 0, true},
		{"us", "10/4/2025", date(2025, 10, 4), 0, true},
		{"long", "October 5, 2025", date(2025, 10, 5), 0, true},
		{"time value", time.Date(2025, 10, 6, 9, 30, 0, 0, time.UTC), date(2025, 10, 6), 0, true},
		{"out of range number", float64(45), time.Time{}, 0, false},
		{"fraction", 1.5, time.Time{}, 0, false},
		{"text", "Total", time.Time{}, 0, false},
		{"nil", nil, time.Time{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full, day, ok := parseDateCell(tt.cell)
			assert.Equal(t, tt.resolve, ok)
			assert.Equal(t, tt.full, full)
			assert.Equal(t, tt.day, day)
		})
	}
}
