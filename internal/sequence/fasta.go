package sequence

import "strings"

// ParseFASTA lấy phần trình tự từ văn bản FASTA một bản ghi.
// Chỉ dòng đầu tiên được xem là header nếu bắt đầu bằng '>'; các dòng còn lại được nối liền.
func ParseFASTA(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if strings.HasPrefix(lines[0], ">") {
		lines = lines[1:]
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(strings.TrimSpace(line))
	}
	return b.String()
}

// Header trả về dòng header (không có '>') nếu có
func Header(text string) string {
	text = strings.TrimSpace(text)
	first, _, _ := strings.Cut(text, "\n")
	if !strings.HasPrefix(first, ">") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(first, ">"))
}
