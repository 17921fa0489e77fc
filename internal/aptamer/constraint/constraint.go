// Package constraint định nghĩa bộ lọc chấp nhận ứng viên theo GC%, độ dài và Tm.
package constraint

import (
	"fmt"
	"math"

	"aptamer_api/internal/aptamer/candidate"
)

// Giá trị mặc định
const (
	DefaultMinGC     = 45.0
	DefaultMaxGC     = 65.0
	DefaultMinLength = 20
	DefaultMaxLength = 80

	// DefaultLengthLimit là trần mặc định của max_length; MaxLengthLimit là trần tuyệt đối
	// (bảng quy hoạch động của oracle gấp tăng theo n² bộ nhớ, n³ thời gian)
	DefaultLengthLimit = 500
	MaxLengthLimit     = 1000
)

// Set là bộ ràng buộc đóng hai đầu. Tm mặc định không giới hạn (±Inf).
type Set struct {
	MinGC     float64
	MaxGC     float64
	MinLength int
	MaxLength int
	MinTm     float64
	MaxTm     float64

	LengthLimit int // Trần cho MaxLength; <= 0 hoặc > MaxLengthLimit thì dùng MaxLengthLimit
}

// Options cho phép bỏ trống từng trường; nil nghĩa là dùng mặc định
type Options struct {
	MinGC     *float64
	MaxGC     *float64
	MinLength *int
	MaxLength *int
	MinTm     *float64
	MaxTm     *float64
}

// Default trả về bộ mặc định: GC 45–65, độ dài 20–80, Tm không giới hạn
func Default() Set {
	return Set{
		MinGC:     DefaultMinGC,
		MaxGC:     DefaultMaxGC,
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
		MinTm:     math.Inf(-1),
		MaxTm:     math.Inf(1),

		LengthLimit: DefaultLengthLimit,
	}
}

// New áp dụng các trường có mặt trong Options lên bộ mặc định
func New(o Options) Set {
	s := Default()
	if o.MinGC != nil {
		s.MinGC = *o.MinGC
	}
	if o.MaxGC != nil {
		s.MaxGC = *o.MaxGC
	}
	if o.MinLength != nil {
		s.MinLength = *o.MinLength
	}
	if o.MaxLength != nil {
		s.MaxLength = *o.MaxLength
	}
	if o.MinTm != nil {
		s.MinTm = *o.MinTm
	}
	if o.MaxTm != nil {
		s.MaxTm = *o.MaxTm
	}
	return s
}

// Validate kiểm tra min ≤ max cho từng cặp, độ dài không âm và max_length không vượt trần
func (s Set) Validate() error {
	if s.MinGC > s.MaxGC {
		return fmt.Errorf("min_gc (%.2f) must not exceed max_gc (%.2f)", s.MinGC, s.MaxGC)
	}
	if s.MinLength < 0 {
		return fmt.Errorf("min_length (%d) must not be negative", s.MinLength)
	}
	if s.MinLength > s.MaxLength {
		return fmt.Errorf("min_length (%d) must not exceed max_length (%d)", s.MinLength, s.MaxLength)
	}
	if limit := s.lengthLimit(); s.MaxLength > limit {
		return fmt.Errorf("max_length (%d) must not exceed %d", s.MaxLength, limit)
	}
	if s.MinTm > s.MaxTm {
		return fmt.Errorf("min_tm (%.2f) must not exceed max_tm (%.2f)", s.MinTm, s.MaxTm)
	}
	return nil
}

func (s Set) lengthLimit() int {
	if s.LengthLimit <= 0 || s.LengthLimit > MaxLengthLimit {
		return MaxLengthLimit
	}
	return s.LengthLimit
}

// AcceptsGC kiểm tra MinGC ≤ gc ≤ MaxGC
func (s Set) AcceptsGC(gc float64) bool {
	return gc >= s.MinGC && gc <= s.MaxGC
}

// AcceptsLength kiểm tra MinLength ≤ n ≤ MaxLength
func (s Set) AcceptsLength(n int) bool {
	return n >= s.MinLength && n <= s.MaxLength
}

// AcceptsTm: Tm vắng mặt luôn được chấp nhận
func (s Set) AcceptsTm(tm candidate.Tm) bool {
	c, ok := tm.Celsius()
	if !ok {
		return true
	}
	return c >= s.MinTm && c <= s.MaxTm
}

// Accepts kết hợp cả ba điều kiện
func (s Set) Accepts(c candidate.Candidate) bool {
	return s.AcceptsGC(c.GCContent) && s.AcceptsLength(c.Length) && s.AcceptsTm(c.Tm)
}
