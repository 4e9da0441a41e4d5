package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

func TestRemainingColor(t *testing.T) {
	green, yellow, red := "GREEN", "YELLOW", "RED"

	tests := []struct {
		name     string
		r        model.Remaining
		expected string
	}{
		{"capacity left", model.Numeric(3), green},
		{"exhausted", model.Numeric(0), yellow},
		{"over limit", model.Numeric(-2), red},
		{"allowed", model.Allowed(), green},
		{"no limit", model.NoLimit(), green},
		{"not applicable", model.NotApplicable(), green},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, remainingColor(tt.r, green, yellow, red))
		})
	}
}

func TestScoreColor(t *testing.T) {
	green, yellow, red := "GREEN", "YELLOW", "RED"

	tests := []struct {
		score    float64
		expected string
	}{
		{10, green},
		{7, green},
		{6.9, yellow},
		{4, yellow},
		{3.9, red},
		{0, red},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, scoreColor(tt.score, green, yellow, red), "score %v", tt.score)
	}
}

func TestFormatVolume(t *testing.T) {
	v := 12.5
	assert.Equal(t, "12.5", formatVolume(&v))
	assert.Equal(t, "n/a", formatVolume(nil))
}

func TestParseDateArg(t *testing.T) {
	d, err := parseDateArg("2025-10-04")
	assert.NoError(t, err)
	assert.Equal(t, 4, d.Day())

	_, err = parseDateArg("10/04/2025")
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}

func TestColored(t *testing.T) {
	assert.Equal(t, colorRed+"-1   "+colorReset, colored("-1", 5, colorRed))
}
