// Package engine chạy các vòng lấy mẫu loại bỏ (rejection sampling) để sinh aptamer:
// sinh mới ngẫu nhiên, đột biến vùng giữa và đột biến điểm.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync/atomic"

	"aptamer_api/internal/aptamer/candidate"
	"aptamer_api/internal/aptamer/constraint"
	"aptamer_api/internal/aptamer/factory"
	"aptamer_api/internal/aptamer/metrics"
	"aptamer_api/internal/sequence"

	"github.com/sirupsen/logrus"
)

var (
	// ErrSearchExhausted: hết ngân sách thử mà không chấp nhận được ứng viên nào
	ErrSearchExhausted = errors.New("search exhausted without accepting any candidate")
	// ErrInvalidParent: trình tự gốc không dùng được cho chế độ đột biến
	ErrInvalidParent = errors.New("invalid parent sequence")
	// ErrInvalidConstraints: min > max ở một ràng buộc
	ErrInvalidConstraints = errors.New("invalid constraints")
)

// Mode là chế độ sinh
type Mode string

const (
	ModeGenerate    Mode = "generate"
	ModeMutate      Mode = "mutate"
	ModePointMutate Mode = "point_mutate"
)

// Config chứa hệ số ngân sách thử (attempts = count × factor) và độ dài flank giữ lại
type Config struct {
	GenerationAttemptFactor    int
	MutationAttemptFactor      int
	PointMutationAttemptFactor int
	FlankLength                int
}

// DefaultConfig: 40/50/20 lần thử cho mỗi ứng viên, flank 5 nt
func DefaultConfig() Config {
	return Config{
		GenerationAttemptFactor:    40,
		MutationAttemptFactor:      50,
		PointMutationAttemptFactor: 20,
		FlankLength:                5,
	}
}

// RandSource tạo rng riêng cho mỗi lần chạy, các request không chia sẻ rng
type RandSource func() *rand.Rand

// SeededSource cho chuỗi rng tất định: lần gọi thứ k dùng PCG(seed, k)
func SeededSource(seed uint64) RandSource {
	var calls atomic.Uint64
	return func() *rand.Rand {
		k := calls.Add(1) - 1
		return rand.New(rand.NewPCG(seed, k))
	}
}

// RandomSource seed từ nguồn ngẫu nhiên toàn cục
func RandomSource() RandSource {
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// Result là kết quả một lần chạy
type Result struct {
	Mode       Mode
	Candidates []candidate.Candidate
	Target     int
	Attempts   int
	Budget     int
}

// Exhausted cho biết số ứng viên nhận được ít hơn yêu cầu
func (r Result) Exhausted() bool {
	return len(r.Candidates) < r.Target
}

// Engine không giữ trạng thái thay đổi giữa các lần chạy ngoài RandSource
type Engine struct {
	calc   *metrics.Calculator
	source RandSource
	cfg    Config
	log    *logrus.Entry
}

// New tạo engine. source nil thì dùng RandomSource
func New(calc *metrics.Calculator, source RandSource, cfg Config) *Engine {
	if source == nil {
		source = RandomSource()
	}
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	return &Engine{calc: calc, source: source, cfg: cfg, log: logrus.NewEntry(silent)}
}

// WithLogger gắn logger cho engine
func (e *Engine) WithLogger(log *logrus.Entry) *Engine {
	if log != nil {
		e.log = log
	}
	return e
}

// Config trả về cấu hình đang dùng
func (e *Engine) Config() Config {
	return e.cfg
}

// Generate sinh tối đa target aptamer ngẫu nhiên thỏa set.
// Độ dài được bảo đảm bởi bộ sinh; GC kiểm tra trước khi gấp; Tm kiểm tra sau.
// Hết ngân sách thì trả về phần đã có (có thể rỗng) và không lỗi.
func (e *Engine) Generate(ctx context.Context, target int, set constraint.Set) (Result, error) {
	if err := set.Validate(); err != nil {
		return Result{Mode: ModeGenerate, Target: target}, fmt.Errorf("%w: %v", ErrInvalidConstraints, err)
	}

	budget := target * e.cfg.GenerationAttemptFactor
	return e.search(ctx, ModeGenerate, target, budget, func(rng *rand.Rand) (candidate.Candidate, bool, error) {
		seq := factory.RandomSequence(rng, set.MinLength, set.MaxLength)
		gc := metrics.GCContent(seq)
		if !set.AcceptsGC(gc) {
			return candidate.Candidate{}, false, nil
		}
		c, err := e.measure(ctx, seq, gc)
		if err != nil {
			return c, false, err
		}
		return c, set.AcceptsTm(c.Tm), nil
	})
}

// Mutate giữ flank hai đầu (dạng bổ sung) và lấy mẫu lại vùng giữa.
// Cửa sổ GC cố định 45–65, không lọc Tm.
// Nhận được một phần thì trả về không lỗi; không nhận được gì thì trả về ErrSearchExhausted.
func (e *Engine) Mutate(ctx context.Context, parent string, count int) (Result, error) {
	flank := e.cfg.FlankLength
	if len(parent) < 2*flank {
		return Result{Mode: ModeMutate, Target: count}, fmt.Errorf("%w: need at least %d nucleotides for %d-nt flanks, got %d",
			ErrInvalidParent, 2*flank, flank, len(parent))
	}

	window := constraint.Default()
	budget := count * e.cfg.MutationAttemptFactor
	res, err := e.search(ctx, ModeMutate, count, budget, func(rng *rand.Rand) (candidate.Candidate, bool, error) {
		seq, err := factory.FullRandomMutation(rng, parent, flank)
		if err != nil {
			return candidate.Candidate{}, false, err
		}
		gc := metrics.GCContent(seq)
		if !window.AcceptsGC(gc) {
			return candidate.Candidate{}, false, nil
		}
		c, err := e.measure(ctx, seq, gc)
		return c, err == nil, err
	})
	return res, exhaustedIfEmpty(res, err)
}

// PointMutate sinh các biến thể khác parent đúng một vị trí, không trùng nhau và không trùng parent.
// Cửa sổ GC cố định 45–65, không lọc Tm. Không nhận được gì thì trả về ErrSearchExhausted.
func (e *Engine) PointMutate(ctx context.Context, parent string, count int) (Result, error) {
	if parent == "" {
		return Result{Mode: ModePointMutate, Target: count}, fmt.Errorf("%w: empty sequence", ErrInvalidParent)
	}

	window := constraint.Default()
	seen := map[string]struct{}{parent: {}}
	budget := count * e.cfg.PointMutationAttemptFactor
	res, err := e.search(ctx, ModePointMutate, count, budget, func(rng *rand.Rand) (candidate.Candidate, bool, error) {
		seq, err := factory.PointMutation(rng, parent)
		if err != nil {
			return candidate.Candidate{}, false, err
		}
		if _, dup := seen[seq]; dup {
			return candidate.Candidate{}, false, nil
		}
		if !sequence.IsRNA(seq) {
			return candidate.Candidate{}, false, nil
		}
		gc := metrics.GCContent(seq)
		if !window.AcceptsGC(gc) {
			return candidate.Candidate{}, false, nil
		}
		c, err := e.measure(ctx, seq, gc)
		if err != nil {
			return c, false, err
		}
		seen[seq] = struct{}{}
		return c, true, nil
	})
	return res, exhaustedIfEmpty(res, err)
}

// measure gấp và tính Tm cho chuỗi đã qua kiểm tra GC
func (e *Engine) measure(ctx context.Context, seq string, gc float64) (candidate.Candidate, error) {
	structure, mfe, err := e.calc.FoldStructureAndEnergy(ctx, seq)
	if err != nil {
		return candidate.Candidate{}, err
	}
	return candidate.Candidate{
		Sequence:  seq,
		Length:    len(seq),
		GCContent: gc,
		Structure: structure,
		MFE:       mfe,
		Tm:        e.calc.MeltingTemperature(seq),
	}, nil
}

func exhaustedIfEmpty(res Result, err error) error {
	if err != nil {
		return err
	}
	if res.Target > 0 && len(res.Candidates) == 0 {
		return fmt.Errorf("%w: %s accepted 0 of %d after %d attempts", ErrSearchExhausted, res.Mode, res.Target, res.Attempts)
	}
	return nil
}
