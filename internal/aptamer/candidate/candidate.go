// Package candidate định nghĩa bản ghi aptamer ứng viên và các giá trị đo có thể vắng mặt.
package candidate

// Candidate là một aptamer đã được chấp nhận cùng các chỉ số đã tính.
// Mọi trường được tính từ Sequence; Length == len(Sequence), len(Structure) == Length khi gấp thành công.
type Candidate struct {
	Sequence  string  `json:"sequence"`
	Length    int     `json:"length"`
	GCContent float64 `json:"gc_content"`
	Structure string  `json:"structure"`
	MFE       Energy  `json:"mfe"`
	Tm        Tm      `json:"tm"`
	Kd        Kd      `json:"kd"`
}
