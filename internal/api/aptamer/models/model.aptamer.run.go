// Package models chứa các model MongoDB của domain aptamer.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"aptamer_api/internal/aptamer/candidate"
)

// RunConstraints là bộ ràng buộc đã áp dụng cho lần sinh mới (nil với chế độ đột biến)
type RunConstraints struct {
	MinGC     float64  `json:"minGc" bson:"minGc"`
	MaxGC     float64  `json:"maxGc" bson:"maxGc"`
	MinLength int      `json:"minLength" bson:"minLength"`
	MaxLength int      `json:"maxLength" bson:"maxLength"`
	MinTm     *float64 `json:"minTm,omitempty" bson:"minTm,omitempty"` // nil = không giới hạn
	MaxTm     *float64 `json:"maxTm,omitempty" bson:"maxTm,omitempty"`
}

// CandidateRecord là dạng lưu trữ của một ứng viên: mfe/kd ở dạng hiển thị, tm nil khi không tính được
type CandidateRecord struct {
	Sequence  string   `json:"sequence" bson:"sequence"`
	Length    int      `json:"length" bson:"length"`
	GCContent float64  `json:"gc_content" bson:"gcContent"`
	Structure string   `json:"structure" bson:"structure"`
	MFE       string   `json:"mfe" bson:"mfe"`
	Tm        *float64 `json:"tm" bson:"tm"`
	Kd        string   `json:"kd" bson:"kd"`
}

// AptamerRun là lịch sử một lần gọi generate/mutate/point-mutate
type AptamerRun struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Mode        string             `json:"mode" bson:"mode" index:"single:1;compound:mode_created"`
	Input       string             `json:"input" bson:"input"` // chuỗi gốc (đột biến) hoặc trình tự protein đã bỏ header FASTA
	InputLength int                `json:"inputLength" bson:"inputLength"`
	Requested   int                `json:"requested" bson:"requested"`
	Accepted    int                `json:"accepted" bson:"accepted"`
	Attempts    int                `json:"attempts" bson:"attempts"`
	Budget      int                `json:"budget" bson:"budget"`
	Constraints *RunConstraints    `json:"constraints,omitempty" bson:"constraints,omitempty"`
	Candidates  []CandidateRecord  `json:"candidates" bson:"candidates"`
	RequestID   string             `json:"requestId,omitempty" bson:"requestId,omitempty"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt" index:"single:-1;compound:mode_created,order:-1"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

// NewCandidateRecord chuyển Candidate sang dạng lưu trữ
func NewCandidateRecord(c candidate.Candidate) CandidateRecord {
	rec := CandidateRecord{
		Sequence:  c.Sequence,
		Length:    c.Length,
		GCContent: c.GCContent,
		Structure: c.Structure,
		MFE:       c.MFE.String(),
		Kd:        c.Kd.String(),
	}
	if tm, ok := c.Tm.Celsius(); ok {
		rec.Tm = &tm
	}
	return rec
}

// NewCandidateRecords chuyển danh sách Candidate sang dạng lưu trữ
func NewCandidateRecords(cs []candidate.Candidate) []CandidateRecord {
	out := make([]CandidateRecord, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewCandidateRecord(c))
	}
	return out
}
