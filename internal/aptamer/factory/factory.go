// Package factory sinh trình tự ứng viên: ngẫu nhiên hoàn toàn, đột biến vùng giữa và đột biến điểm.
// Mọi hàm chỉ dùng rng được truyền vào, cùng seed cho cùng kết quả.
package factory

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"aptamer_api/internal/sequence"
)

// ErrParentTooShort báo trình tự gốc không đủ dài cho hai vùng flank
var ErrParentTooShort = errors.New("parent sequence too short")

// RandomSequence sinh chuỗi độ dài ngẫu nhiên đều trong [minLen, maxLen], mỗi base chọn đều từ AUGC
func RandomSequence(rng *rand.Rand, minLen, maxLen int) string {
	if minLen < 0 {
		minLen = 0
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	n := minLen + rng.IntN(maxLen-minLen+1)
	return randomBases(rng, n)
}

// FullRandomMutation giữ numToKeep base ở mỗi đầu dưới dạng bổ sung (A↔U, G↔C, khác → N)
// và thay phần giữa bằng base ngẫu nhiên; độ dài không đổi
func FullRandomMutation(rng *rand.Rand, parent string, numToKeep int) (string, error) {
	if numToKeep < 0 || len(parent) < 2*numToKeep {
		return "", fmt.Errorf("%w: need at least %d nucleotides, got %d", ErrParentTooShort, 2*numToKeep, len(parent))
	}

	head := sequence.ComplementString(parent[:numToKeep])
	tail := sequence.ComplementString(parent[len(parent)-numToKeep:])
	middle := randomBases(rng, len(parent)-2*numToKeep)
	return head + middle + tail, nil
}

// PointMutation thay đúng một vị trí ngẫu nhiên bằng base khác base hiện tại.
// Vị trí chứa ký tự ngoài bảng chữ cái được thay bằng một base bất kỳ.
func PointMutation(rng *rand.Rand, parent string) (string, error) {
	if parent == "" {
		return "", fmt.Errorf("%w: empty sequence", ErrParentTooShort)
	}

	pos := rng.IntN(len(parent))
	choices := make([]byte, 0, len(sequence.Alphabet))
	for i := 0; i < len(sequence.Alphabet); i++ {
		if sequence.Alphabet[i] != parent[pos] {
			choices = append(choices, sequence.Alphabet[i])
		}
	}

	out := []byte(parent)
	out[pos] = choices[rng.IntN(len(choices))]
	return string(out), nil
}

func randomBases(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = sequence.Alphabet[rng.IntN(len(sequence.Alphabet))]
	}
	return string(b)
}
