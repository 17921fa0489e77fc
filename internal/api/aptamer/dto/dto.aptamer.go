// Package dto chứa các struct input/output cho API aptamer.
package dto

import (
	"aptamer_api/internal/aptamer/candidate"
)

// Số lượng mặc định khi request không gửi
const (
	DefaultNumAptamers       = 30
	DefaultNumMutations      = 30
	DefaultNumPointMutations = 10
)

// GenerateInput là body của POST /aptamers/generate.
// Các ràng buộc bỏ trống dùng mặc định (GC 45–65, độ dài 20–80, Tm không giới hạn).
// Độ dài tối đa 1000 nt; trần thấp hơn theo MAX_SEQUENCE_LENGTH do service kiểm tra.
type GenerateInput struct {
	FastaSequence string   `json:"fasta_sequence" validate:"required,no_xss"`
	NumAptamers   int      `json:"num_aptamers" validate:"gte=1"`
	MinGC         *float64 `json:"min_gc,omitempty" validate:"omitempty,gte=0,lte=100"`
	MaxGC         *float64 `json:"max_gc,omitempty" validate:"omitempty,gte=0,lte=100"`
	MinLength     *int     `json:"min_length,omitempty" validate:"omitempty,gte=1,lte=1000"`
	MaxLength     *int     `json:"max_length,omitempty" validate:"omitempty,gte=1,lte=1000"`
	MinTm         *float64 `json:"min_tm,omitempty"`
	MaxTm         *float64 `json:"max_tm,omitempty"`
}

// NewGenerateInput trả về input với số lượng mặc định
func NewGenerateInput() GenerateInput {
	return GenerateInput{NumAptamers: DefaultNumAptamers}
}

// MutateInput là body của POST /aptamers/mutate
type MutateInput struct {
	Aptamer      string `json:"aptamer" validate:"required,rna_sequence"`
	NumMutations int    `json:"num_mutations" validate:"gte=1"`
}

// NewMutateInput trả về input với số lượng mặc định
func NewMutateInput() MutateInput {
	return MutateInput{NumMutations: DefaultNumMutations}
}

// PointMutateInput là body của POST /aptamers/point-mutate
type PointMutateInput struct {
	Aptamer           string `json:"aptamer" validate:"required,rna_sequence"`
	NumPointMutations int    `json:"num_point_mutations" validate:"gte=1"`
}

// NewPointMutateInput trả về input với số lượng mặc định
func NewPointMutateInput() PointMutateInput {
	return PointMutateInput{NumPointMutations: DefaultNumPointMutations}
}

// PlotInput là body của POST /aptamers/plot-structure
type PlotInput struct {
	Sequence  string `json:"sequence" validate:"required,rna_sequence"`
	Structure string `json:"structure" validate:"required,dot_bracket"`
}

// GenerateOutput là kết quả sinh mới
type GenerateOutput struct {
	InputLength int                   `json:"input_length"`
	NumAptamers int                   `json:"num_aptamers"`
	Aptamers    []candidate.Candidate `json:"aptamers"`
	RunID       string                `json:"run_id,omitempty"`
}

// MutationOutput là kết quả đột biến vùng giữa hoặc đột biến điểm
type MutationOutput struct {
	OriginalAptamer string                `json:"original_aptamer"`
	Mutations       []candidate.Candidate `json:"mutations"`
	RunID           string                `json:"run_id,omitempty"`
}
