// Package thermo tính nhiệt độ nóng chảy (Tm) của RNA theo mô hình nearest-neighbor hai trạng thái.
//
// Đơn vị: ΔH kcal/mol, ΔS cal/(K·mol), Tm °C.
//
//  1. ΔH/ΔS = khởi tạo + cặp đầu A/U + tổng các stack (bảng RNA NN1, Freier 1986) + đối xứng.
//  2. Hiệu chỉnh muối vào ΔS: ΔS += 0.368·(N−1)·ln[Na+].
//  3. Tm = 1000·ΔH / (ΔS + R·ln k) − 273.15, với k = (C1 − C2/2)·1e-9, hoặc C1·1e-9 nếu tự bổ sung.
package thermo

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// R là hằng số khí theo cal/(K·mol)
const R = 1.987

// NNParams là cặp ΔH (kcal/mol), ΔS (cal/(K·mol))
type NNParams struct {
	DH float64
	DS float64
}

// rnaNN1: khóa theo dạng DNA "XY/X'Y'" (T thay cho U), 5'→3' / 3'→5'
var rnaNN1 = map[string]NNParams{
	"AA/TT": {-6.6, -18.4},
	"AT/TA": {-5.7, -15.5},
	"TA/AT": {-8.1, -22.6},
	"CA/GT": {-10.5, -27.8},
	"CT/GA": {-7.6, -19.2},
	"GA/CT": {-13.3, -35.5},
	"GT/CA": {-10.2, -26.2},
	"CG/GC": {-8.0, -19.4},
	"GC/CG": {-14.2, -34.9},
	"GG/CC": {-12.2, -29.7},
}

var (
	initParams   = NNParams{3.61, -1.5}
	terminalAU   = NNParams{3.72, 10.5} // mỗi cặp A/U ở đầu mút
	symmetryCorr = NNParams{0, -1.4}
	errTooShort  = errors.New("sequence too short for nearest-neighbor Tm")
)

// Conditions mô tả dung dịch: nồng độ ion và nồng độ sợi
type Conditions struct {
	NaMM    float64 // Na+ (mM)
	Strand1 float64 // nM, sợi nhiều hơn
	Strand2 float64 // nM, sợi ít hơn
}

// DefaultConditions: 50 mM Na+, 25 nM mỗi sợi
func DefaultConditions() Conditions {
	return Conditions{NaMM: 50, Strand1: 25, Strand2: 25}
}

// Model là oracle Tm cho RNA, không giữ trạng thái thay đổi nên dùng chung an toàn
type Model struct {
	cond Conditions
}

// NewRNAModel tạo model với điều kiện mặc định
func NewRNAModel() *Model {
	return &Model{cond: DefaultConditions()}
}

// NewRNAModelWithConditions tạo model với điều kiện tùy chỉnh
func NewRNAModelWithConditions(c Conditions) *Model {
	return &Model{cond: c}
}

// Thermodynamics trả về ΔH, ΔS (đã hiệu chỉnh muối) của duplex seq với chuỗi bổ sung hoàn hảo
func (m *Model) Thermodynamics(seq string) (dh, ds float64, err error) {
	s, err := toDNAAlphabet(seq)
	if err != nil {
		return 0, 0, err
	}
	if len(s) < 2 {
		return 0, 0, errTooShort
	}
	comp := complement(s)

	dh, ds = initParams.DH, initParams.DS

	ends := string([]byte{s[0], s[len(s)-1]})
	atEnds := float64(strings.Count(ends, "A") + strings.Count(ends, "T"))
	dh += terminalAU.DH * atEnds
	ds += terminalAU.DS * atEnds

	for i := 0; i+1 < len(s); i++ {
		key := s[i:i+2] + "/" + comp[i:i+2]
		p, ok := rnaNN1[key]
		if !ok {
			p, ok = rnaNN1[reverse(key)]
		}
		if !ok {
			return 0, 0, fmt.Errorf("no nearest-neighbor parameters for %s", key)
		}
		dh += p.DH
		ds += p.DS
	}

	if isSelfComplementary(s) {
		dh += symmetryCorr.DH
		ds += symmetryCorr.DS
	}

	if m.cond.NaMM <= 0 {
		return 0, 0, fmt.Errorf("invalid Na+ concentration %.3f mM", m.cond.NaMM)
	}
	ds += 0.368 * float64(len(s)-1) * math.Log(m.cond.NaMM*1e-3)

	return dh, ds, nil
}

// MeltingTemp tính Tm (°C) chưa làm tròn
func (m *Model) MeltingTemp(seq string) (float64, error) {
	dh, ds, err := m.Thermodynamics(seq)
	if err != nil {
		return 0, err
	}

	s, _ := toDNAAlphabet(seq)
	k := (m.cond.Strand1 - m.cond.Strand2/2) * 1e-9
	if isSelfComplementary(s) {
		k = m.cond.Strand1 * 1e-9
	}
	if k <= 0 {
		return 0, fmt.Errorf("invalid strand concentrations %.3f/%.3f nM", m.cond.Strand1, m.cond.Strand2)
	}

	denom := ds + R*math.Log(k)
	if denom == 0 {
		return 0, errors.New("degenerate entropy term")
	}
	tm := 1000*dh/denom - 273.15
	if math.IsNaN(tm) || math.IsInf(tm, 0) {
		return 0, errors.New("non-finite melting temperature")
	}
	return tm, nil
}

// toDNAAlphabet đổi chữ hoa và U→T để tra bảng
func toDNAAlphabet(seq string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(seq))
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'C', 'G', 'T':
			out[i] = s[i]
		case 'U':
			out[i] = 'T'
		default:
			return "", fmt.Errorf("invalid base %q at position %d", s[i], i)
		}
	}
	return string(out), nil
}

func complement(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A':
			out[i] = 'T'
		case 'T':
			out[i] = 'A'
		case 'G':
			out[i] = 'C'
		case 'C':
			out[i] = 'G'
		}
	}
	return string(out)
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func isSelfComplementary(s string) bool {
	return reverse(complement(s)) == s
}
