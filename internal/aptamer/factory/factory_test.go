package factory

import (
	"math/rand/v2"
	"strings"
	"testing"

	"aptamer_api/internal/sequence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestRandomSequence(t *testing.T) {
	rng := newRand(1)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		s := RandomSequence(rng, 20, 25)
		require.True(t, sequence.IsRNA(s), s)
		require.GreaterOrEqual(t, len(s), 20)
		require.LessOrEqual(t, len(s), 25)
		seen[len(s)] = true
	}
	assert.Len(t, seen, 6)

	assert.Len(t, RandomSequence(rng, 30, 30), 30)
	assert.Len(t, RandomSequence(rng, 30, 10), 30)
	assert.Equal(t, "", RandomSequence(rng, 0, 0))
}

func TestRandomSequence_Deterministic(t *testing.T) {
	a := RandomSequence(newRand(42), 20, 80)
	b := RandomSequence(newRand(42), 20, 80)
	assert.Equal(t, a, b)
}

func TestFullRandomMutation(t *testing.T) {
	parent := "AUGCAUGCAUGCAUGCAUGCAUGCAUGCAUGC"
	rng := newRand(3)
	for i := 0; i < 50; i++ {
		m, err := FullRandomMutation(rng, parent, 5)
		require.NoError(t, err)
		require.Len(t, m, len(parent))
		assert.Equal(t, "UACGU", m[:5])
		assert.Equal(t, "GUACG", m[len(m)-5:])
		assert.True(t, sequence.IsRNA(m[5:len(m)-5]))
	}
}

func TestFullRandomMutation_NonAlphabetFlanks(t *testing.T) {
	m, err := FullRandomMutation(newRand(3), "XXXXXAUGCAUGCAUGCAUGCAUGCAUGCAAAAT", 5)
	require.NoError(t, err)
	assert.Equal(t, "NNNNN", m[:5])
	assert.Equal(t, "UUUUN", m[len(m)-5:])
}

func TestFullRandomMutation_TooShort(t *testing.T) {
	_, err := FullRandomMutation(newRand(1), "AUGCAUGCA", 5)
	assert.ErrorIs(t, err, ErrParentTooShort)

	m, err := FullRandomMutation(newRand(1), "AUGCAUGCAU", 5)
	require.NoError(t, err)
	assert.Equal(t, "UACGUACGUA", m)
}

func TestPointMutation(t *testing.T) {
	parent := strings.Repeat("AUGC", 8)
	rng := newRand(9)
	for i := 0; i < 200; i++ {
		m, err := PointMutation(rng, parent)
		require.NoError(t, err)
		require.Len(t, m, len(parent))

		diff := 0
		for k := range m {
			if m[k] != parent[k] {
				diff++
			}
		}
		assert.Equal(t, 1, diff)
		assert.True(t, sequence.IsRNA(m))
	}

	_, err := PointMutation(rng, "")
	assert.ErrorIs(t, err, ErrParentTooShort)
}

func TestPointMutation_NonAlphabetPosition(t *testing.T) {
	m, err := PointMutation(newRand(5), "N")
	require.NoError(t, err)
	assert.True(t, sequence.IsRNA(m))
}
