package constraint

import (
	"math"
	"testing"

	"aptamer_api/internal/aptamer/candidate"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, 45.0, s.MinGC)
	assert.Equal(t, 65.0, s.MaxGC)
	assert.Equal(t, 20, s.MinLength)
	assert.Equal(t, 80, s.MaxLength)
	assert.Equal(t, DefaultLengthLimit, s.LengthLimit)
	assert.True(t, math.IsInf(s.MinTm, -1))
	assert.True(t, math.IsInf(s.MaxTm, 1))
	assert.NoError(t, s.Validate())
}

func TestNew_PartialOverrides(t *testing.T) {
	s := New(Options{MinGC: ptr(50.0), MaxLength: ptr(40), MaxTm: ptr(70.0)})
	assert.Equal(t, 50.0, s.MinGC)
	assert.Equal(t, 65.0, s.MaxGC)
	assert.Equal(t, 20, s.MinLength)
	assert.Equal(t, 40, s.MaxLength)
	assert.True(t, math.IsInf(s.MinTm, -1))
	assert.Equal(t, 70.0, s.MaxTm)
}

func TestValidate(t *testing.T) {
	assert.Error(t, New(Options{MinGC: ptr(70.0)}).Validate())
	assert.Error(t, New(Options{MinLength: ptr(50), MaxLength: ptr(30)}).Validate())
	assert.Error(t, New(Options{MinTm: ptr(80.0), MaxTm: ptr(60.0)}).Validate())
	assert.Error(t, New(Options{MinLength: ptr(-1)}).Validate())
}

func TestValidate_LengthLimit(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		maxLength int
		ok        bool
	}{
		{"default limit", DefaultLengthLimit, DefaultLengthLimit, true},
		{"above default limit", DefaultLengthLimit, DefaultLengthLimit + 1, false},
		{"custom limit", 100, 120, false},
		{"unset limit falls back to hard ceiling", 0, MaxLengthLimit, true},
		{"limit above hard ceiling is clamped", 50000, MaxLengthLimit + 1, false},
		{"huge length", DefaultLengthLimit, 30000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Options{MaxLength: ptr(tt.maxLength)})
			s.LengthLimit = tt.limit
			err := s.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, "max_length")
			}
		})
	}
}

func TestAcceptsGC_InclusiveBounds(t *testing.T) {
	s := Default()
	assert.True(t, s.AcceptsGC(45))
	assert.True(t, s.AcceptsGC(65))
	assert.False(t, s.AcceptsGC(44.99))
	assert.False(t, s.AcceptsGC(65.01))
}

func TestAcceptsTm(t *testing.T) {
	s := New(Options{MinTm: ptr(50.0), MaxTm: ptr(60.0)})
	assert.True(t, s.AcceptsTm(candidate.TmUnavailable()))
	assert.True(t, s.AcceptsTm(candidate.TmOf(50)))
	assert.True(t, s.AcceptsTm(candidate.TmOf(60)))
	assert.False(t, s.AcceptsTm(candidate.TmOf(49.9)))
	assert.False(t, s.AcceptsTm(candidate.TmOf(60.1)))

	assert.True(t, Default().AcceptsTm(candidate.TmOf(-1000)))
}

func TestAccepts(t *testing.T) {
	s := Default()
	c := candidate.Candidate{Sequence: "x", Length: 30, GCContent: 50, Tm: candidate.TmUnavailable()}
	assert.True(t, s.Accepts(c))

	c.Length = 10
	assert.False(t, s.Accepts(c))

	c.Length = 30
	c.GCContent = 80
	assert.False(t, s.Accepts(c))
}
