package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aptamer_api/internal/aptamer/candidate"
	"aptamer_api/internal/database"
)

func TestNewCandidateRecord(t *testing.T) {
	rec := NewCandidateRecord(candidate.Candidate{
		Sequence:  "GGGGAAACCCC",
		Length:    11,
		GCContent: 72.73,
		Structure: "((((...))))",
		MFE:       candidate.EnergyOf(-4.5),
		Tm:        candidate.TmOf(41.2),
		Kd:        candidate.KdUnknown(),
	})
	assert.Equal(t, "-4.50", rec.MFE)
	require.NotNil(t, rec.Tm)
	assert.InDelta(t, 41.2, *rec.Tm, 1e-9)
	assert.Equal(t, "N/A", rec.Kd)

	rec = NewCandidateRecord(candidate.Candidate{Tm: candidate.TmUnavailable(), MFE: candidate.EnergyOf(0)})
	assert.Nil(t, rec.Tm)
	assert.Equal(t, "N/A", rec.MFE)
}

func TestAptamerRunIndexes(t *testing.T) {
	specs, err := database.IndexSpecs(AptamerRun{})
	require.NoError(t, err)

	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"mode_single", "createdAt_single", "mode_created"}, names)
}
