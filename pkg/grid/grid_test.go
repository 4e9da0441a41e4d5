package grid

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
)

var october = Options{DefaultPeriod: calendar.NewPeriod(2025, time.October)}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize_DayHeader(t *testing.T) {
	rows := [][]interface{}{
		{"October schedule"},
		{},
		{"Day", "SiteA - MD1", "SiteA - PM", "Notes"},
		{1, "Dr. Smith", "UNCOVERED"},
		{"2", "Dr. Smith, Dr. Jones (Gap)", "Dr. Jones"},
	}

	res, err := Normalize("Schedule", rows, october)
	require.NoError(t, err)

	assert.Equal(t, FormatDayHeader, res.Format)
	assert.Equal(t, "Schedule", res.Sheet)
	assert.Equal(t, []Fact{
		{Provider: "Dr. Smith", Site: "SiteA", ShiftCode: "MD1", Date: date(2025, 10, 1)},
		{Provider: "Dr. Smith", Site: "SiteA", ShiftCode: "MD1", Date: date(2025, 10, 2)},
		{Provider: "Dr. Jones", Site: "SiteA", ShiftCode: "MD1", Date: date(2025, 10, 2), Gap: true},
		{Provider: "Dr. Jones", Site: "SiteA", ShiftCode: "PM", Date: date(2025, 10, 2)},
	}, res.Facts)
	assert.Equal(t, []Slot{{Site: "SiteA", ShiftCode: "PM", Date: date(2025, 10, 1)}}, res.Uncovered)
	assert.Equal(t, []time.Time{date(2025, 10, 1), date(2025, 10, 2)}, res.Days)
}

func TestNormalize_TwoRowHeader(t *testing.T) {
	rows := [][]interface{}{
		{"", "North Clinic", "", "South Clinic"},
		{"", "MD1", "PM", "MD2"},
		{float64(3), "Dr. Adams", "", "Dr. Baker / Dr. Cole"},
	}

	res, err := Normalize("Grid", rows, october)
	require.NoError(t, err)

	assert.Equal(t, FormatTwoRowHeader, res.Format)
	assert.Equal(t, []Fact{
		{Provider: "Dr. Adams", Site: "North Clinic", ShiftCode: "MD1", Date: date(2025, 10, 3)},
		{Provider: "Dr. Baker", Site: "South Clinic", ShiftCode: "MD2", Date: date(2025, 10, 3)},
		{Provider: "Dr. Cole", Site: "South Clinic", ShiftCode: "MD2", Date: date(2025, 10, 3)},
	}, res.Facts)
	assert.Equal(t, []Slot{{Site: "North Clinic", ShiftCode: "PM", Date: date(2025, 10, 3)}}, res.Uncovered)
}

func TestNormalize_PairHeader(t *testing.T) {
	rows := [][]interface{}{
		{"Date", "Main - St. Mary's - MD2"},
		{"2025-11-05", "Dr. Patel and Dr. Wu"},
	}

	res, err := Normalize("Pairs", rows, october)
	require.NoError(t, err)

	assert.Equal(t, FormatPairHeader, res.Format)
	assert.Equal(t, calendar.NewPeriod(2025, time.November), res.Period)
	require.Len(t, res.Facts, 2)
	assert.Equal(t, "Main - St. Mary's", res.Facts[0].Site)
	assert.Equal(t, "MD2", res.Facts[0].ShiftCode)
	assert.Equal(t, "Dr. Patel", res.Facts[0].Provider)
	assert.Equal(t, "Dr. Wu", res.Facts[1].Provider)
}

func TestNormalize_Flat(t *testing.T) {
	rows := [][]interface{}{
		{"Provider", "Site", "Date", "Shift", "Start Time", "End Time", "Notes", "Status"},
		{"Dr. Lee", "East", "10/07/2025", "PM", "13:00", "21:00", "", "Confirmed"},
		{"OPEN", "East", "10/08/2025", "PM", "13:00", "21:00", "", ""},
		{"Dr. Lee", "West", "not a date", "MD1"},
		{"Nurse Kim", "West", "10/09/2025", "", "07:00", "15:00", "float"},
	}

	res, err := Normalize("Flat", rows, october)
	require.NoError(t, err)

	assert.Equal(t, FormatFlat, res.Format)
	assert.Equal(t, []Fact{
		{Provider: "Dr. Lee", Site: "East", ShiftCode: "PM", Date: date(2025, 10, 7), Status: "confirmed", StartTime: "13:00", EndTime: "21:00"},
		{Provider: "Nurse Kim", Site: "West", ShiftCode: "07:00-15:00", Date: date(2025, 10, 9), Notes: "float", StartTime: "07:00", EndTime: "15:00"},
	}, res.Facts)
	assert.Equal(t, []Slot{{Site: "East", ShiftCode: "PM", Date: date(2025, 10, 8)}}, res.Uncovered)
}

func TestNormalize_FlatSplitsProviders(t *testing.T) {
	rows := [][]interface{}{
		{"Provider", "Site", "Date", "Shift"},
		{"Dr. A / Dr. B", "North", "2025-10-01", "MD1"},
		{"Dr. C and Dr. D (Gap)", "North", "2025-10-02", "PM"},
		{"TBD; OPEN", "South", "2025-10-02", "MD2"},
	}

	res, err := Normalize("Flat", rows, october)
	require.NoError(t, err)

	assert.Equal(t, FormatFlat, res.Format)
	assert.Equal(t, []Fact{
		{Provider: "Dr. A", Site: "North", ShiftCode: "MD1", Date: date(2025, 10, 1)},
		{Provider: "Dr. B", Site: "North", ShiftCode: "MD1", Date: date(2025, 10, 1)},
		{Provider: "Dr. C", Site: "North", ShiftCode: "PM", Date: date(2025, 10, 2)},
		{Provider: "Dr. D", Site: "North", ShiftCode: "PM", Date: date(2025, 10, 2), Gap: true},
	}, res.Facts)
	assert.Equal(t, []Slot{{Site: "South", ShiftCode: "MD2", Date: date(2025, 10, 2)}}, res.Uncovered)
}

func TestNormalize_ExcelSerialInfersMonth(t *testing.T) {
	rows := [][]interface{}{
		{"Day", "A - MD1"},
		{float64(45931), "Dr. One"}, // 2025-10-01
		{float64(2), "Dr. Two"},
	}

	res, err := Normalize("Serial", rows, Options{DefaultPeriod: calendar.NewPeriod(2024, time.March)})
	require.NoError(t, err)

	assert.Equal(t, calendar.NewPeriod(2025, time.October), res.Period)
	require.Len(t, res.Facts, 2)
	assert.Equal(t, date(2025, 10, 1), res.Facts[0].Date)
	assert.Equal(t, date(2025, 10, 2), res.Facts[1].Date)
}

func TestNormalize_BareDaysUseDefaultPeriod(t *testing.T) {
	rows := [][]interface{}{
		{"Day", "A - PM"},
		{"31", "Dr. One"},
	}

	res, err := Normalize("Bare", rows, Options{DefaultPeriod: calendar.NewPeriod(2025, time.September)})
	require.NoError(t, err)

	// September has 30 days, so day 31 is dropped rather than rolled over
	assert.Empty(t, res.Facts)
	assert.Empty(t, res.Days)
}

func TestNormalize_UnparseableDateSkipsRow(t *testing.T) {
	rows := [][]interface{}{
		{"Day", "A - PM"},
		{"Total", "12"},
		{"5", "Dr. One"},
	}

	res, err := Normalize("Totals", rows, october)
	require.NoError(t, err)
	require.Len(t, res.Facts, 1)
	assert.Equal(t, date(2025, 10, 5), res.Facts[0].Date)
}

func TestNormalize_StructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]interface{}
		expected error
	}{
		{"empty", nil, ErrTooFewRows},
		{"single row", [][]interface{}{{"Day", "A - MD1"}}, ErrTooFewRows},
		{"blank second row", [][]interface{}{{"Day", "A - MD1"}, {"", nil}}, ErrTooFewRows},
		{"no recognizable header", [][]interface{}{{"foo", "bar"}, {"baz", "qux"}}, ErrUnrecognizedLayout},
		{"day marker without site columns", [][]interface{}{{"Day", "Notes"}, {1, "x"}}, ErrUnrecognizedLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize("Bad", tt.rows, october)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected))

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "Bad", fe.Sheet)
		})
	}
}
