// Package sequence chứa các tiện ích chuẩn hóa chuỗi RNA và đọc FASTA.
package sequence

import (
	"strings"
	"unicode"
)

// Alphabet là bảng chữ cái RNA theo thứ tự dùng cho việc chọn ngẫu nhiên
const Alphabet = "AUGC"

// Normalize bỏ khoảng trắng, đổi sang chữ hoa và thay T bằng U
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		r = unicode.ToUpper(r)
		if r == 'T' {
			r = 'U'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsRNA trả về true nếu seq khác rỗng và chỉ gồm A, U, G, C
func IsRNA(seq string) bool {
	if seq == "" {
		return false
	}
	for i := 0; i < len(seq); i++ {
		if !IsBase(seq[i]) {
			return false
		}
	}
	return true
}

// IsBase kiểm tra một ký tự có thuộc bảng chữ cái RNA không
func IsBase(b byte) bool {
	switch b {
	case 'A', 'U', 'G', 'C':
		return true
	}
	return false
}

// Complement trả về base bổ sung Watson-Crick (A↔U, G↔C), ký tự khác trả về 'N'
func Complement(b byte) byte {
	switch b {
	case 'A':
		return 'U'
	case 'U':
		return 'A'
	case 'G':
		return 'C'
	case 'C':
		return 'G'
	}
	return 'N'
}

// ComplementString áp dụng Complement cho từng ký tự
func ComplementString(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		out[i] = Complement(seq[i])
	}
	return string(out)
}
