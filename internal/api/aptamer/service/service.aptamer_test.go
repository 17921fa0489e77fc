package aptamersvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aptamer_api/internal/api/aptamer/dto"
	aptamermodels "aptamer_api/internal/api/aptamer/models"
	basemodels "aptamer_api/internal/api/base/models"
	"aptamer_api/internal/aptamer/engine"
	"aptamer_api/internal/aptamer/metrics"
	"aptamer_api/internal/common"
	"aptamer_api/internal/plot"
)

type memoryRuns struct {
	mu      sync.Mutex
	runs    []aptamermodels.AptamerRun
	failErr error
}

func (m *memoryRuns) InsertOne(_ context.Context, run aptamermodels.AptamerRun) (aptamermodels.AptamerRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return aptamermodels.AptamerRun{}, m.failErr
	}
	run.ID = primitive.NewObjectID()
	run.CreatedAt = time.Now().UnixMilli()
	m.runs = append(m.runs, run)
	return run, nil
}

func (m *memoryRuns) FindOneById(_ context.Context, id primitive.ObjectID) (aptamermodels.AptamerRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return aptamermodels.AptamerRun{}, common.ErrNotFound
}

func (m *memoryRuns) FindWithPagination(_ context.Context, _ interface{}, page, limit int64, _ *options.FindOptions) (*basemodels.PaginateResult[aptamermodels.AptamerRun], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	page, limit = basemodels.NormalizePage(page, limit)
	start := min((page-1)*limit, int64(len(m.runs)))
	end := min(start+limit, int64(len(m.runs)))
	return basemodels.NewPaginateResult(m.runs[start:end], page, limit, int64(len(m.runs))), nil
}

func (m *memoryRuns) CountDocuments(_ context.Context, _ interface{}) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.runs)), nil
}

type fakePlotter struct {
	svg []byte
	err error
}

func (f fakePlotter) Plot(context.Context, string, string) ([]byte, error) {
	return f.svg, f.err
}

func newTestService(runs *memoryRuns, plotter Plotter) *AptamerService {
	eng := engine.New(metrics.NewDefaultCalculator(), engine.SeededSource(7), engine.DefaultConfig())
	// runs nil phải truyền nil interface, không phải (*memoryRuns)(nil)
	if runs == nil {
		return NewAptamerService(eng, plotter, nil, Config{MaxRequestCount: 500}, nil)
	}
	return NewAptamerService(eng, plotter, runs, Config{MaxRequestCount: 500}, nil)
}

func requireCode(t *testing.T, err error, code common.ErrorCode, status int) *common.Error {
	t.Helper()
	var appErr *common.Error
	require.True(t, errors.As(err, &appErr), "expected *common.Error, got %v", err)
	assert.Equal(t, code.Code, appErr.Code.Code)
	assert.Equal(t, status, appErr.StatusCode)
	return appErr
}

func ptr[T any](v T) *T { return &v }

func TestGenerate(t *testing.T) {
	runs := &memoryRuns{}
	svc := newTestService(runs, nil)

	in := dto.NewGenerateInput()
	in.FastaSequence = ">sp|P00734|THRB_HUMAN\nMAHVRGLQLPGCLALAALCSLVHS\nQHVFLAPQQARSLLQRVRR"
	in.NumAptamers = 3

	out, err := svc.Generate(context.Background(), in, "req-1")
	require.NoError(t, err)
	assert.Equal(t, 43, out.InputLength)
	assert.Equal(t, len(out.Aptamers), out.NumAptamers)
	assert.NotEmpty(t, out.Aptamers)
	assert.LessOrEqual(t, len(out.Aptamers), 3)
	for _, c := range out.Aptamers {
		assert.GreaterOrEqual(t, c.GCContent, 45.0)
		assert.LessOrEqual(t, c.GCContent, 65.0)
		assert.Len(t, c.Structure, c.Length)
	}

	require.NotEmpty(t, out.RunID)
	require.Len(t, runs.runs, 1)
	run := runs.runs[0]
	assert.Equal(t, string(engine.ModeGenerate), run.Mode)
	assert.Equal(t, "req-1", run.RequestID)
	require.NotNil(t, run.Constraints)
	assert.Nil(t, run.Constraints.MinTm)
	assert.Equal(t, 20, run.Constraints.MinLength)
}

func TestGenerate_Errors(t *testing.T) {
	svc := newTestService(nil, nil)
	base := dto.NewGenerateInput()
	base.FastaSequence = "MKV"

	t.Run("min gc above max gc", func(t *testing.T) {
		in := base
		in.MinGC, in.MaxGC = ptr(70.0), ptr(50.0)
		_, err := svc.Generate(context.Background(), in, "")
		appErr := requireCode(t, err, common.ErrCodeValidationInput, common.StatusBadRequest)
		assert.Contains(t, appErr.Message, "min_gc")
	})

	t.Run("count above ceiling", func(t *testing.T) {
		in := base
		in.NumAptamers = 501
		_, err := svc.Generate(context.Background(), in, "")
		requireCode(t, err, common.ErrCodeValidationInput, common.StatusBadRequest)
	})

	t.Run("unreachable tm", func(t *testing.T) {
		in := base
		in.NumAptamers = 2
		in.MinTm = ptr(500.0)
		_, err := svc.Generate(context.Background(), in, "")
		appErr := requireCode(t, err, common.ErrCodeAptamerGeneration, common.StatusBadRequest)
		assert.Equal(t, MsgNoAptamers, appErr.Message)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.Generate(ctx, base, "")
		requireCode(t, err, common.ErrCodeCanceled, common.StatusRequestTimeout)
	})
}

func TestGenerate_SequenceLengthLimit(t *testing.T) {
	eng := engine.New(metrics.NewDefaultCalculator(), engine.SeededSource(7), engine.DefaultConfig())
	svc := NewAptamerService(eng, nil, nil, Config{MaxRequestCount: 500, MaxSequenceLength: 100}, nil)

	in := dto.NewGenerateInput()
	in.FastaSequence = "MKV"
	in.MaxLength = ptr(150)
	_, err := svc.Generate(context.Background(), in, "")
	appErr := requireCode(t, err, common.ErrCodeValidationInput, common.StatusBadRequest)
	assert.Contains(t, appErr.Message, "max_length")

	in.MinLength, in.MaxLength = ptr(90), ptr(100)
	in.NumAptamers = 1
	out, err := svc.Generate(context.Background(), in, "")
	require.NoError(t, err)
	for _, c := range out.Aptamers {
		assert.LessOrEqual(t, c.Length, 100)
	}
}

func TestGenerate_TimeoutInterruptsLongFold(t *testing.T) {
	eng := engine.New(metrics.NewDefaultCalculator(), engine.SeededSource(7), engine.DefaultConfig())
	svc := NewAptamerService(eng, nil, nil, Config{
		MaxRequestCount:   500,
		MaxSequenceLength: 1000,
		RequestTimeout:    20 * time.Millisecond,
	}, nil)

	in := dto.NewGenerateInput()
	in.FastaSequence = "MKV"
	in.NumAptamers = 1
	in.MinLength, in.MaxLength = ptr(1000), ptr(1000)
	in.MinGC, in.MaxGC = ptr(0.0), ptr(100.0)

	start := time.Now()
	_, err := svc.Generate(context.Background(), in, "")
	requireCode(t, err, common.ErrCodeCanceled, common.StatusRequestTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestMutate(t *testing.T) {
	svc := newTestService(nil, nil)
	parent := "GGGAAAUCCCGGGAAAUCCCGGGAAAUCCC"

	out, err := svc.Mutate(context.Background(), dto.MutateInput{Aptamer: strings.ToLower(parent), NumMutations: 3}, "")
	require.NoError(t, err)
	assert.Equal(t, parent, out.OriginalAptamer)
	require.NotEmpty(t, out.Mutations)
	for _, m := range out.Mutations {
		assert.Len(t, m.Sequence, len(parent))
		assert.Equal(t, "CCCUU", m.Sequence[:5])
		assert.Equal(t, "UAGGG", m.Sequence[len(m.Sequence)-5:])
	}
	assert.Empty(t, out.RunID)
}

func TestMutate_LengthBounds(t *testing.T) {
	svc := newTestService(nil, nil)
	for _, seq := range []string{"AUGC", strings.Repeat("AUGC", 21)} {
		_, err := svc.Mutate(context.Background(), dto.MutateInput{Aptamer: seq, NumMutations: 1}, "")
		appErr := requireCode(t, err, common.ErrCodeValidationInput, common.StatusBadRequest)
		assert.Equal(t, MsgMutateLength, appErr.Message)
	}
}

func TestPointMutate(t *testing.T) {
	runs := &memoryRuns{}
	svc := newTestService(runs, nil)
	parent := "GGGAAAUCCCGGGAAAUCCCGGGAAAUCCC"

	out, err := svc.PointMutate(context.Background(), dto.PointMutateInput{Aptamer: parent, NumPointMutations: 5}, "")
	require.NoError(t, err)
	require.Len(t, out.Mutations, 5)

	seen := map[string]bool{}
	for _, m := range out.Mutations {
		assert.NotEqual(t, parent, m.Sequence)
		assert.False(t, seen[m.Sequence])
		seen[m.Sequence] = true

		diff := 0
		for i := range parent {
			if parent[i] != m.Sequence[i] {
				diff++
			}
		}
		assert.Equal(t, 1, diff)
	}
	assert.NotEmpty(t, out.RunID)
}

func TestPointMutate_Errors(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.PointMutate(context.Background(), dto.PointMutateInput{Aptamer: "AUGC", NumPointMutations: 1}, "")
	appErr := requireCode(t, err, common.ErrCodeValidationInput, common.StatusBadRequest)
	assert.Equal(t, MsgPointMutateLength, appErr.Message)

	_, err = svc.PointMutate(context.Background(), dto.PointMutateInput{Aptamer: strings.Repeat("A", 25), NumPointMutations: 3}, "")
	appErr = requireCode(t, err, common.ErrCodeAptamerPointMutation, common.StatusBadRequest)
	assert.Equal(t, MsgNoPointMutations, appErr.Message)
}

func TestSaveRunFailureIsNotFatal(t *testing.T) {
	runs := &memoryRuns{failErr: common.ErrMongoNetwork}
	svc := newTestService(runs, nil)

	out, err := svc.PointMutate(context.Background(), dto.PointMutateInput{Aptamer: "GGGAAAUCCCGGGAAAUCCCGGGAAAUCCC", NumPointMutations: 2}, "")
	require.NoError(t, err)
	assert.Len(t, out.Mutations, 2)
	assert.Empty(t, out.RunID)
}

func TestPlot(t *testing.T) {
	in := dto.PlotInput{Sequence: "GGGGAAACCCC", Structure: "((((...))))"}

	svc := newTestService(nil, fakePlotter{svg: []byte("<svg/>")})
	svg, err := svc.Plot(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(svg))

	svc = newTestService(nil, fakePlotter{err: fmt.Errorf("%w: length mismatch", plot.ErrInvalidInput)})
	_, err = svc.Plot(context.Background(), in)
	requireCode(t, err, common.ErrCodeValidationInput, common.StatusBadRequest)

	svc = newTestService(nil, fakePlotter{err: errors.New("RNAplot failed: exit status 1")})
	_, err = svc.Plot(context.Background(), in)
	appErr := requireCode(t, err, common.ErrCodeAptamerPlot, common.StatusInternalServerError)
	assert.Equal(t, MsgPlotFailed, appErr.Message)
}
