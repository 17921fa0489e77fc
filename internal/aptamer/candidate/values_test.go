package candidate

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergy_Display(t *testing.T) {
	assert.Equal(t, "N/A", UnknownEnergy().String())
	assert.Equal(t, "N/A", EnergyOf(0).String())
	assert.Equal(t, "-12.30", EnergyOf(-12.3).String())

	v, ok := EnergyOf(0).Value()
	assert.True(t, ok)
	assert.Zero(t, v)
	assert.False(t, EnergyOf(0).Displayable())
}

func TestTm_Availability(t *testing.T) {
	assert.False(t, TmOf(math.NaN()).Available())
	assert.False(t, TmOf(math.Inf(-1)).Available())
	assert.True(t, TmOf(-3).Available())

	c, ok := TmOf(55.25).Celsius()
	assert.True(t, ok)
	assert.Equal(t, 55.25, c)
}

func TestKdOf_Thresholds(t *testing.T) {
	tests := []struct {
		nm   float64
		want string
		kind KdKind
	}{
		{0.001, "<0.01", KdBelowThreshold},
		{0.01, "0.01", KdValue},
		{47.123, "47.12", KdValue},
		{1e8, "100000000.00", KdValue},
		{2e8, ">1E8", KdAboveThreshold},
		{math.Inf(1), "N/A", KdUnavailable},
	}
	for _, tt := range tests {
		k := KdOf(tt.nm)
		assert.Equal(t, tt.kind, k.Kind, tt.want)
		assert.Equal(t, tt.want, k.String())
	}
}

func TestCandidate_JSON(t *testing.T) {
	c := Candidate{
		Sequence:  "GGGGAAACCCC",
		Length:    11,
		GCContent: 72.73,
		Structure: "((((...))))",
		MFE:       EnergyOf(-4.5),
		Tm:        TmUnavailable(),
		Kd:        KdOf(512.4),
	}
	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "-4.50", got["mfe"])
	assert.Nil(t, got["tm"])
	assert.Equal(t, "512.40", got["kd"])
	assert.Equal(t, 72.73, got["gc_content"])

	c.Tm = TmOf(61.5)
	raw, err = json.Marshal(c)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 61.5, got["tm"])
}
