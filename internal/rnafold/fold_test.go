package rnafold

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold_SimpleHairpin(t *testing.T) {
	r, err := Fold("GGGGAAACCCC")
	require.NoError(t, err)
	assert.Equal(t, "((((...))))", r.Structure)
	assert.InDelta(t, -4.5, r.Energy, 1e-9)
}

func TestFold_NoStructure(t *testing.T) {
	for _, seq := range []string{"AAAAAAAAAAAA", "GGGAC", "A", "CCCCCCCCCC"} {
		r, err := Fold(seq)
		require.NoError(t, err, seq)
		assert.Equal(t, strings.Repeat(".", len(seq)), r.Structure, seq)
		assert.Zero(t, r.Energy, seq)
	}
}

func TestFold_Empty(t *testing.T) {
	r, err := Fold("")
	require.NoError(t, err)
	assert.Equal(t, Result{}, r)
}

func TestFold_InvalidInput(t *testing.T) {
	for _, seq := range []string{"AUGT", "augc", "AUG N"} {
		_, err := Fold(seq)
		assert.Error(t, err, seq)
	}
}

func TestFold_RandomSequencesAreConsistent(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for n := 0; n < 40; n++ {
		length := 20 + rng.IntN(61)
		b := make([]byte, length)
		for i := range b {
			b[i] = "AUGC"[rng.IntN(4)]
		}
		seq := string(b)

		r, err := Fold(seq)
		require.NoError(t, err, seq)
		require.Len(t, r.Structure, length, seq)
		assert.LessOrEqual(t, r.Energy, 0.0, seq)

		pt, err := pairTable(r.Structure)
		require.NoError(t, err, seq)
		for i, j := range pt {
			if j > i {
				assert.NotEqual(t, pairNone, pairType(seq[i], seq[j]), "pair %d,%d in %s", i, j, seq)
				assert.GreaterOrEqual(t, j-i-1, minHairpin)
			}
		}

		eval, err := EvalStructure(seq, r.Structure)
		require.NoError(t, err, seq)
		assert.InDelta(t, r.Energy, eval, 1e-9, "%s %s", seq, r.Structure)
	}
}

func TestFold_Multiloop(t *testing.T) {
	// hai hairpin GGGG/CCCC nằm giữa một helix ngoài GGG/CCC
	seq := "GGGAGGGGAAACCCCAGGGGAAACCCCACCC"
	r, err := Fold(seq)
	require.NoError(t, err)
	assert.Less(t, r.Energy, -4.5)

	eval, err := EvalStructure(seq, r.Structure)
	require.NoError(t, err)
	assert.InDelta(t, r.Energy, eval, 1e-9)
}

func TestEvalStructure_Errors(t *testing.T) {
	_, err := EvalStructure("GGGAAACCC", "(((...))")
	assert.Error(t, err)
	_, err = EvalStructure("GGGAAACCC", "(((...)))")
	assert.NoError(t, err)
	_, err = EvalStructure("GGGAAACCC", "((....)))")
	assert.Error(t, err)
	_, err = EvalStructure("AAAAAAAAA", "(((...)))")
	assert.Error(t, err)
	_, err = EvalStructure("GGGGACCCC", "((((.))))")
	assert.Error(t, err)
}

func TestFolder_Fold(t *testing.T) {
	s, e, err := NewFolder().Fold(context.Background(), "GGGGAAACCCC")
	require.NoError(t, err)
	assert.Equal(t, "((((...))))", s)
	assert.Less(t, e, 0.0)
}

func TestFoldContext_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FoldContext(ctx, strings.Repeat("GGGAAAUCCC", 30))
	assert.ErrorIs(t, err, context.Canceled)

	_, _, err = NewFolder().Fold(ctx, "GGGGAAACCCC")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFoldContext_DeadlineStopsLongFold(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	seq := make([]byte, 1000)
	for i := range seq {
		seq[i] = "AUGC"[rng.IntN(4)]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := FoldContext(ctx, string(seq))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
