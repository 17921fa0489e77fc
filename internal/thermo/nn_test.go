package thermo

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeltingTemp_PlausibleRange(t *testing.T) {
	m := NewRNAModel()
	tm, err := m.MeltingTemp(strings.Repeat("AUGC", 5))
	require.NoError(t, err)
	assert.False(t, math.IsNaN(tm))
	assert.Greater(t, tm, 0.0)
	assert.Less(t, tm, 120.0)
}

func TestMeltingTemp_GCRichIsHigher(t *testing.T) {
	m := NewRNAModel()
	gc, err := m.MeltingTemp(strings.Repeat("GC", 10))
	require.NoError(t, err)
	au, err := m.MeltingTemp(strings.Repeat("AU", 10))
	require.NoError(t, err)
	assert.Greater(t, gc, au)
}

func TestMeltingTemp_AcceptsDNAAndLowercase(t *testing.T) {
	m := NewRNAModel()
	a, err := m.MeltingTemp("ggcuaaugcc")
	require.NoError(t, err)
	b, err := m.MeltingTemp("GGCTAATGCC")
	require.NoError(t, err)
	assert.InDelta(t, a, b, 1e-9)
}

func TestMeltingTemp_Errors(t *testing.T) {
	m := NewRNAModel()
	for _, seq := range []string{"", "A", "AUGN", "AUG-C"} {
		_, err := m.MeltingTemp(seq)
		assert.Error(t, err, seq)
	}
}

func TestThermodynamics_SaltLowersEntropy(t *testing.T) {
	seq := "GGAUCCAUGCAAUGC"
	_, dsLow, err := NewRNAModelWithConditions(Conditions{NaMM: 10, Strand1: 25, Strand2: 25}).Thermodynamics(seq)
	require.NoError(t, err)
	_, dsHigh, err := NewRNAModelWithConditions(Conditions{NaMM: 1000, Strand1: 25, Strand2: 25}).Thermodynamics(seq)
	require.NoError(t, err)
	assert.Less(t, dsLow, dsHigh)
}

func TestSelfComplementary(t *testing.T) {
	assert.True(t, isSelfComplementary("GCGC"))
	assert.False(t, isSelfComplementary("GGGG"))
}
