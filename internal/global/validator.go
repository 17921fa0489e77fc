package global

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

func init() {
	InitValidator()
}

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("rna_sequence", validateRNASequence)
	_ = Validate.RegisterValidation("dot_bracket", validateDotBracket)
}

// validateNoXSS chặn các mẫu script phổ biến trong text tự do (ví dụ header FASTA)
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"<iframe",
		"<object",
		"<embed",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateRNASequence chấp nhận A/C/G/U/T (không phân biệt hoa thường), bỏ qua khoảng trắng
func validateRNASequence(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	hasBase := false
	for _, r := range value {
		if unicode.IsSpace(r) {
			continue
		}
		switch unicode.ToUpper(r) {
		case 'A', 'C', 'G', 'U', 'T':
			hasBase = true
		default:
			return false
		}
	}
	return hasBase
}

// validateDotBracket chấp nhận chuỗi chỉ gồm '(', ')', '.' với ngoặc cân bằng
func validateDotBracket(fl validator.FieldLevel) bool {
	depth := 0
	for _, r := range strings.TrimSpace(fl.Field().String()) {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		case '.':
		default:
			return false
		}
	}
	return depth == 0
}
