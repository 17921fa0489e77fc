// Package rnafold dự đoán cấu trúc bậc hai có năng lượng tự do nhỏ nhất (MFE) của RNA
// bằng quy hoạch động kiểu Zuker trên các cặp chuẩn AU, GC và GU.
package rnafold

import (
	"context"
	"fmt"
	"strings"
)

// Result là kết quả gấp: chuỗi dot-bracket và năng lượng (kcal/mol)
type Result struct {
	Structure string
	Energy    float64
}

// Folder bọc Fold theo interface oracle gấp (structure, energy, error)
type Folder struct{}

// NewFolder tạo folder, không có trạng thái nên dùng chung giữa các goroutine
func NewFolder() *Folder {
	return &Folder{}
}

// Fold gấp seq và trả về (structure, energy kcal/mol); dừng khi ctx bị hủy
func (f *Folder) Fold(ctx context.Context, seq string) (string, float64, error) {
	r, err := FoldContext(ctx, seq)
	if err != nil {
		return "", 0, err
	}
	return r.Structure, r.Energy, nil
}

// Fold tính cấu trúc MFE. seq phải chỉ gồm A, U, G, C (chữ hoa).
// Chuỗi rỗng trả về ("", 0); chuỗi không có cấu trúc bền trả về toàn dấu chấm và năng lượng 0.
func Fold(seq string) (Result, error) {
	return FoldContext(context.Background(), seq)
}

// FoldContext như Fold nhưng kiểm tra ctx sau mỗi đường chéo của bảng quy hoạch động,
// trả về ctx.Err() khi bị hủy hoặc hết hạn
func FoldContext(ctx context.Context, seq string) (Result, error) {
	if seq == "" {
		return Result{}, nil
	}
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'U', 'G', 'C':
		default:
			return Result{}, fmt.Errorf("invalid RNA base %q at position %d", seq[i], i)
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	m := newMatrices(seq)
	if err := m.fill(ctx); err != nil {
		return Result{}, err
	}
	return Result{
		Structure: m.traceback(),
		Energy:    float64(m.w[m.n]) / 100,
	}, nil
}

// matrices:
//   - v[i][j]: năng lượng tối ưu của đoạn i..j khi i ghép với j
//   - wm[i][j]: năng lượng tối ưu của đoạn i..j nằm trong multiloop (ít nhất một nhánh)
//   - w[k]: năng lượng tối ưu của tiền tố độ dài k ở vùng ngoài
type matrices struct {
	s     string
	n     int
	v, wm []int
	w     []int
	pairs []byte
}

func newMatrices(seq string) *matrices {
	n := len(seq)
	m := &matrices{
		s:  seq,
		n:  n,
		v:  make([]int, n*n),
		wm: make([]int, n*n),
		w:  make([]int, n+1),
	}
	for i := range m.v {
		m.v[i] = inf
		m.wm[i] = inf
	}
	return m
}

func (m *matrices) at(i, j int) int { return i*m.n + j }

func (m *matrices) pair(i, j int) int { return pairType(m.s[i], m.s[j]) }

func (m *matrices) fill(ctx context.Context) error {
	for d := minHairpin + 1; d < m.n; d++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := 0; i+d < m.n; i++ {
			j := i + d
			if t := m.pair(i, j); t != pairNone {
				m.v[m.at(i, j)] = m.bestPaired(i, j, t)
			}
			m.wm[m.at(i, j)] = m.bestMulti(i, j)
		}
	}

	for k := 1; k <= m.n; k++ {
		best := m.w[k-1]
		j := k - 1
		for i := 0; i+minHairpin < j; i++ {
			if e := m.exteriorBranch(i, j); e < inf {
				best = min(best, e)
			}
		}
		m.w[k] = best
	}
	return nil
}

// exteriorBranch là w[i] + v[i][j] + phạt AU, hoặc inf
func (m *matrices) exteriorBranch(i, j int) int {
	v := m.v[m.at(i, j)]
	if v >= inf {
		return inf
	}
	return m.w[i] + v + auPenalty(m.pair(i, j))
}

func (m *matrices) bestPaired(i, j, t int) int {
	best := hairpinEnergy(t, j-i-1)

	m.eachInner(i, j, t, func(p, q, e int) bool {
		best = min(best, e)
		return false
	})

	for u := i + 2; u < j-1; u++ {
		if e := m.multiClosing(i, j, u, t); e < best {
			best = e
		}
	}
	return best
}

// eachInner duyệt các cặp trong (p,q) tạo stack/bulge/interior loop với (i,j);
// visit trả về true để dừng
func (m *matrices) eachInner(i, j, t int, visit func(p, q, e int) bool) {
	for p := i + 1; p < j; p++ {
		l1 := p - i - 1
		if l1 > maxLoop {
			return
		}
		for q := j - 1; q > p+minHairpin; q-- {
			l2 := j - q - 1
			if l1+l2 > maxLoop {
				break
			}
			v := m.v[m.at(p, q)]
			if v >= inf {
				continue
			}
			e := interiorEnergy(t, pairType(m.s[q], m.s[p]), l1, l2) + v
			if visit(p, q, e) {
				return
			}
		}
	}
}

func (m *matrices) multiClosing(i, j, u, t int) int {
	left, right := m.wm[m.at(i+1, u)], m.wm[m.at(u+1, j-1)]
	if left >= inf || right >= inf {
		return inf
	}
	return left + right + mlClosing + mlIntern + auPenalty(t)
}

func (m *matrices) bestMulti(i, j int) int {
	best := inf
	if v := m.v[m.at(i, j)]; v < inf {
		best = v + mlIntern + auPenalty(m.pair(i, j))
	}
	if e := m.wm[m.at(i+1, j)]; e < inf {
		best = min(best, e+mlBase)
	}
	if e := m.wm[m.at(i, j-1)]; e < inf {
		best = min(best, e+mlBase)
	}
	for u := i + 1; u < j; u++ {
		left, right := m.wm[m.at(i, u)], m.wm[m.at(u+1, j)]
		if left < inf && right < inf {
			best = min(best, left+right)
		}
	}
	return best
}

func (m *matrices) traceback() string {
	m.pairs = []byte(strings.Repeat(".", m.n))

	k := m.n
	for k > 0 {
		if m.w[k] == m.w[k-1] {
			k--
			continue
		}
		j := k - 1
		next := k - 1
		for i := 0; i+minHairpin < j; i++ {
			if m.exteriorBranch(i, j) == m.w[k] {
				m.traceV(i, j)
				next = i
				break
			}
		}
		k = next
	}
	return string(m.pairs)
}

func (m *matrices) traceV(i, j int) {
	m.pairs[i], m.pairs[j] = '(', ')'
	target := m.v[m.at(i, j)]
	t := m.pair(i, j)

	if hairpinEnergy(t, j-i-1) == target {
		return
	}

	found := false
	m.eachInner(i, j, t, func(p, q, e int) bool {
		if e == target {
			m.traceV(p, q)
			found = true
		}
		return found
	})
	if found {
		return
	}

	for u := i + 2; u < j-1; u++ {
		if m.multiClosing(i, j, u, t) == target {
			m.traceWM(i+1, u)
			m.traceWM(u+1, j-1)
			return
		}
	}
}

func (m *matrices) traceWM(i, j int) {
	target := m.wm[m.at(i, j)]

	if v := m.v[m.at(i, j)]; v < inf && v+mlIntern+auPenalty(m.pair(i, j)) == target {
		m.traceV(i, j)
		return
	}
	if e := m.wm[m.at(i+1, j)]; e < inf && e+mlBase == target {
		m.traceWM(i+1, j)
		return
	}
	if e := m.wm[m.at(i, j-1)]; e < inf && e+mlBase == target {
		m.traceWM(i, j-1)
		return
	}
	for u := i + 1; u < j; u++ {
		left, right := m.wm[m.at(i, u)], m.wm[m.at(u+1, j)]
		if left < inf && right < inf && left+right == target {
			m.traceWM(i, u)
			m.traceWM(u+1, j)
			return
		}
	}
}
