// Package aptamersvc điều phối engine sinh aptamer, RNAplot và lưu lịch sử chạy vào MongoDB.
package aptamersvc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"aptamer_api/internal/api/aptamer/dto"
	aptamermodels "aptamer_api/internal/api/aptamer/models"
	basesvc "aptamer_api/internal/api/base/service"
	"aptamer_api/internal/aptamer/constraint"
	"aptamer_api/internal/aptamer/engine"
	"aptamer_api/internal/common"
	"aptamer_api/internal/plot"
	"aptamer_api/internal/sequence"
)

// Giới hạn độ dài aptamer đầu vào cho các chế độ đột biến
const (
	MinAptamerLength = 20
	MaxAptamerLength = 80
)

// Thông báo lỗi trả về client
const (
	MsgMutateLength        = "Aptamer must be between 20 and 80 nucleotides long."
	MsgPointMutateLength   = "Aptamer length must be between 20 and 80 nucleotides."
	MsgNoAptamers          = "No aptamers could be generated with the given constraints. Try relaxing Tm, GC%, or length filters."
	MsgNoPointMutations    = "No valid point mutations generated with the given parameters."
	MsgNoMutations         = "No valid mutations generated with the given parameters."
	MsgPlotFailed          = "Failed to plot secondary structure"
	MsgStructureOracleFail = "Structure prediction failed"
)

// Plotter vẽ cấu trúc bậc hai ra SVG
type Plotter interface {
	Plot(ctx context.Context, seq, structure string) ([]byte, error)
}

// Config là các giới hạn cho mỗi request
type Config struct {
	MaxRequestCount   int           // Trần num_aptamers / num_mutations / num_point_mutations
	MaxSequenceLength int           // Trần max_length khi sinh mới; 0 = constraint.MaxLengthLimit
	RequestTimeout    time.Duration // 0 = không giới hạn
}

// AptamerService xử lý nghiệp vụ của API aptamer
type AptamerService struct {
	engine  *engine.Engine
	plotter Plotter
	runs    basesvc.BaseServiceMongo[aptamermodels.AptamerRun] // nil khi tắt lưu lịch sử
	cfg     Config
	log     *logrus.Entry
}

// NewAptamerService tạo service. runs nil thì không lưu lịch sử; log nil thì không ghi log.
func NewAptamerService(eng *engine.Engine, plotter Plotter, runs basesvc.BaseServiceMongo[aptamermodels.AptamerRun], cfg Config, log *logrus.Entry) *AptamerService {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(l)
	}
	return &AptamerService{engine: eng, plotter: plotter, runs: runs, cfg: cfg, log: log}
}

// Runs trả về store lịch sử (nil khi tắt)
func (s *AptamerService) Runs() basesvc.BaseServiceMongo[aptamermodels.AptamerRun] {
	return s.runs
}

// Generate sinh aptamer ngẫu nhiên theo ràng buộc. Không sinh được gì là lỗi APT_001.
func (s *AptamerService) Generate(ctx context.Context, in dto.GenerateInput, requestID string) (*dto.GenerateOutput, error) {
	protein := sequence.ParseFASTA(in.FastaSequence)
	if err := s.checkCount("num_aptamers", in.NumAptamers); err != nil {
		return nil, err
	}

	set := constraint.New(constraint.Options{
		MinGC:     in.MinGC,
		MaxGC:     in.MaxGC,
		MinLength: in.MinLength,
		MaxLength: in.MaxLength,
		MinTm:     in.MinTm,
		MaxTm:     in.MaxTm,
	})
	set.LengthLimit = s.cfg.MaxSequenceLength
	if err := set.Validate(); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, nil)
	}

	runCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	res, err := s.engine.Generate(runCtx, in.NumAptamers, set)
	if err != nil {
		return nil, s.mapEngineError(err, common.ErrCodeAptamerGeneration, MsgNoAptamers)
	}
	if len(res.Candidates) == 0 {
		return nil, common.NewError(common.ErrCodeAptamerGeneration, MsgNoAptamers, common.StatusBadRequest, nil)
	}

	out := &dto.GenerateOutput{
		InputLength: len(protein),
		NumAptamers: len(res.Candidates),
		Aptamers:    res.Candidates,
	}
	out.RunID = s.saveRun(ctx, res, protein, requestID, runConstraints(set))
	return out, nil
}

// Mutate đột biến vùng giữa của aptamer, giữ flank hai đầu ở dạng bổ sung
func (s *AptamerService) Mutate(ctx context.Context, in dto.MutateInput, requestID string) (*dto.MutationOutput, error) {
	aptamer, err := s.checkAptamer(in.Aptamer, MsgMutateLength)
	if err != nil {
		return nil, err
	}
	if err := s.checkCount("num_mutations", in.NumMutations); err != nil {
		return nil, err
	}

	runCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	res, err := s.engine.Mutate(runCtx, aptamer, in.NumMutations)
	if err != nil {
		return nil, s.mapEngineError(err, common.ErrCodeAptamerMutation, MsgNoMutations)
	}

	out := &dto.MutationOutput{OriginalAptamer: aptamer, Mutations: res.Candidates}
	out.RunID = s.saveRun(ctx, res, aptamer, requestID, nil)
	return out, nil
}

// PointMutate sinh các biến thể đột biến một vị trí, không trùng lặp
func (s *AptamerService) PointMutate(ctx context.Context, in dto.PointMutateInput, requestID string) (*dto.MutationOutput, error) {
	aptamer, err := s.checkAptamer(in.Aptamer, MsgPointMutateLength)
	if err != nil {
		return nil, err
	}
	if err := s.checkCount("num_point_mutations", in.NumPointMutations); err != nil {
		return nil, err
	}

	runCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	res, err := s.engine.PointMutate(runCtx, aptamer, in.NumPointMutations)
	if err != nil {
		return nil, s.mapEngineError(err, common.ErrCodeAptamerPointMutation, MsgNoPointMutations)
	}

	out := &dto.MutationOutput{OriginalAptamer: aptamer, Mutations: res.Candidates}
	out.RunID = s.saveRun(ctx, res, aptamer, requestID, nil)
	return out, nil
}

// Plot vẽ cấu trúc bậc hai ra SVG
func (s *AptamerService) Plot(ctx context.Context, in dto.PlotInput) ([]byte, error) {
	svg, err := s.plotter.Plot(ctx, in.Sequence, in.Structure)
	switch {
	case err == nil:
		return svg, nil
	case errors.Is(err, plot.ErrInvalidInput):
		return nil, common.NewError(common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, common.NewError(common.ErrCodeCanceled, common.ErrRequestCanceled.Error(), common.StatusRequestTimeout, err)
	default:
		s.log.WithError(err).Error("RNAplot failed")
		return nil, common.NewError(common.ErrCodeAptamerPlot, MsgPlotFailed, common.StatusInternalServerError, err)
	}
}

// checkAptamer chuẩn hóa và kiểm tra độ dài 20–80
func (s *AptamerService) checkAptamer(raw, lengthMsg string) (string, error) {
	aptamer := sequence.Normalize(raw)
	if len(aptamer) < MinAptamerLength || len(aptamer) > MaxAptamerLength {
		return "", common.NewError(common.ErrCodeValidationInput, lengthMsg, common.StatusBadRequest, nil)
	}
	if !sequence.IsRNA(aptamer) {
		return "", common.NewError(common.ErrCodeValidationInput, "Aptamer may only contain A, U, G, C (T is read as U).", common.StatusBadRequest, nil)
	}
	return aptamer, nil
}

// checkCount giới hạn số lượng yêu cầu trong [1, MaxRequestCount]
func (s *AptamerService) checkCount(field string, n int) error {
	if n < 1 {
		return common.NewError(common.ErrCodeValidationInput, fmt.Sprintf("%s must be at least 1", field), common.StatusBadRequest, nil)
	}
	if s.cfg.MaxRequestCount > 0 && n > s.cfg.MaxRequestCount {
		return common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("%s must not exceed %d", field, s.cfg.MaxRequestCount), common.StatusBadRequest, nil)
	}
	return nil
}

func (s *AptamerService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.RequestTimeout)
}

// mapEngineError chuyển lỗi engine sang common.Error theo chế độ
func (s *AptamerService) mapEngineError(err error, exhaustedCode common.ErrorCode, exhaustedMsg string) error {
	switch {
	case errors.Is(err, engine.ErrSearchExhausted):
		return common.NewError(exhaustedCode, exhaustedMsg, common.StatusBadRequest, nil)
	case errors.Is(err, engine.ErrInvalidParent), errors.Is(err, engine.ErrInvalidConstraints):
		return common.NewError(common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return common.NewError(common.ErrCodeCanceled, common.ErrRequestCanceled.Error(), common.StatusRequestTimeout, err)
	default:
		s.log.WithError(err).Error("Aptamer engine failed")
		return common.NewError(common.ErrCodeInternalServer, MsgStructureOracleFail, common.StatusInternalServerError, err)
	}
}

// saveRun lưu lịch sử nếu có store. Lỗi lưu chỉ được ghi log, không làm hỏng response.
func (s *AptamerService) saveRun(ctx context.Context, res engine.Result, input, requestID string, cons *aptamermodels.RunConstraints) string {
	if s.runs == nil {
		return ""
	}

	run := aptamermodels.AptamerRun{
		Mode:        string(res.Mode),
		Input:       input,
		InputLength: len(input),
		Requested:   res.Target,
		Accepted:    len(res.Candidates),
		Attempts:    res.Attempts,
		Budget:      res.Budget,
		Constraints: cons,
		Candidates:  aptamermodels.NewCandidateRecords(res.Candidates),
		RequestID:   requestID,
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	saved, err := s.runs.InsertOne(saveCtx, run)
	if err != nil {
		s.log.WithError(err).WithField("mode", run.Mode).Warn("Failed to save aptamer run")
		return ""
	}
	return saved.ID.Hex()
}

// runConstraints chuyển Set sang dạng lưu trữ; Tm vô hạn được lưu là nil
func runConstraints(set constraint.Set) *aptamermodels.RunConstraints {
	rc := &aptamermodels.RunConstraints{
		MinGC:     set.MinGC,
		MaxGC:     set.MaxGC,
		MinLength: set.MinLength,
		MaxLength: set.MaxLength,
	}
	if !math.IsInf(set.MinTm, 0) {
		v := set.MinTm
		rc.MinTm = &v
	}
	if !math.IsInf(set.MaxTm, 0) {
		v := set.MaxTm
		rc.MaxTm = &v
	}
	return rc
}
