package rnafold

import "fmt"

// EvalStructure tính năng lượng (kcal/mol) của một cấu trúc dot-bracket cho trước
// theo cùng mô hình năng lượng với Fold
func EvalStructure(seq, structure string) (float64, error) {
	if len(seq) != len(structure) {
		return 0, fmt.Errorf("sequence length %d does not match structure length %d", len(seq), len(structure))
	}
	pt, err := pairTable(structure)
	if err != nil {
		return 0, err
	}

	e := &evaluator{s: seq, pt: pt}
	total := 0
	for i := 0; i < len(seq); {
		j := pt[i]
		if j < 0 {
			i++
			continue
		}
		t := pairType(seq[i], seq[j])
		if t == pairNone {
			return 0, fmt.Errorf("non-canonical pair %c-%c at %d,%d", seq[i], seq[j], i, j)
		}
		le, err := e.loop(i, j)
		if err != nil {
			return 0, err
		}
		total += le + auPenalty(t)
		i = j + 1
	}
	return float64(total) / 100, nil
}

// pairTable trả về pt[i] = vị trí ghép với i, hoặc -1
func pairTable(structure string) ([]int, error) {
	pt := make([]int, len(structure))
	var stack []int
	for i := 0; i < len(structure); i++ {
		pt[i] = -1
		switch structure[i] {
		case '(':
			stack = append(stack, i)
		case ')':
			if len(stack) == 0 {
				return nil, fmt.Errorf("unbalanced ')' at %d", i)
			}
			o := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			pt[o], pt[i] = i, o
		case '.':
		default:
			return nil, fmt.Errorf("invalid structure symbol %q at %d", structure[i], i)
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("unbalanced '(' at %d", stack[len(stack)-1])
	}
	return pt, nil
}

type evaluator struct {
	s  string
	pt []int
}

// loop tính năng lượng của loop đóng bởi (i,j) cộng đệ quy các loop bên trong
func (e *evaluator) loop(i, j int) (int, error) {
	t := pairType(e.s[i], e.s[j])
	if t == pairNone {
		return 0, fmt.Errorf("non-canonical pair %c-%c at %d,%d", e.s[i], e.s[j], i, j)
	}

	var branches [][2]int
	for k := i + 1; k < j; {
		if e.pt[k] > k {
			branches = append(branches, [2]int{k, e.pt[k]})
			k = e.pt[k] + 1
			continue
		}
		k++
	}

	switch len(branches) {
	case 0:
		h := hairpinEnergy(t, j-i-1)
		if h >= inf {
			return 0, fmt.Errorf("hairpin closed by %d,%d is too small", i, j)
		}
		return h, nil
	case 1:
		p, q := branches[0][0], branches[0][1]
		inner, err := e.loop(p, q)
		if err != nil {
			return 0, err
		}
		return interiorEnergy(t, pairType(e.s[q], e.s[p]), p-i-1, j-q-1) + inner, nil
	}

	total := mlClosing + mlIntern + auPenalty(t)
	paired := 0
	for _, b := range branches {
		inner, err := e.loop(b[0], b[1])
		if err != nil {
			return 0, err
		}
		total += inner + mlIntern + auPenalty(pairType(e.s[b[0]], e.s[b[1]]))
		paired += b[1] - b[0] + 1
	}
	total += mlBase * (j - i - 1 - paired)
	return total, nil
}
