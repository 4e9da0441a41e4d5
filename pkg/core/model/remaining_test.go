package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemaining_HasCapacity(t *testing.T) {
	tests := []struct {
		name     string
		r        Remaining
		expected bool
	}{
		{"positive", Numeric(3), true},
		{"zero", Numeric(0), false},
		{"negative", Numeric(-2), false},
		{"allowed", Allowed(), true},
		{"no limit", NoLimit(), true},
		{"not applicable", NotApplicable(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.r.HasCapacity())
		})
	}
}

func TestRemaining_IsNegative(t *testing.T) {
	assert.True(t, Numeric(-1).IsNegative())
	assert.False(t, Numeric(0).IsNegative())
	assert.False(t, NotApplicable().IsNegative())
}

func TestRemaining_JSON(t *testing.T) {
	out, err := json.Marshal(map[string]Remaining{
		"a": Numeric(-4),
		"b": Allowed(),
		"c": NoLimit(),
		"d": NotApplicable(),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":-4,"b":"Allowed","c":"No limit","d":"N/A"}`, string(out))

	var back map[string]Remaining
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, Numeric(-4), back["a"])
	assert.Equal(t, NoLimit(), back["c"])
}

func TestNumericOrNoLimit(t *testing.T) {
	limit := 12
	assert.Equal(t, Numeric(12), NumericOrNoLimit(&limit))
	assert.Equal(t, NoLimit(), NumericOrNoLimit(nil))
}
