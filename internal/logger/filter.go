package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

const filteredKey = "_filtered"

// FilterHook đánh dấu các entry không khớp bộ lọc bằng field "_filtered";
// AsyncHook sẽ bỏ qua các entry này.
// Lọc theo: log type (level), module, endpoint (field "endpoint" hoặc "path", so khớp tiền tố)
type FilterHook struct {
	allowedModules   map[string]bool
	allowedEndpoints map[string]bool
	allowedLogTypes  map[string]bool
}

// NewFilterHook tạo filter hook từ cấu hình
func NewFilterHook(cfg *LogConfig) *FilterHook {
	return &FilterHook{
		allowedModules:   parseFilter(cfg.FilterModules),
		allowedEndpoints: parseFilter(cfg.FilterEndpoints),
		allowedLogTypes:  parseFilter(cfg.FilterLogTypes),
	}
}

// parseFilter parse "a,b,c" thành set lowercase. Rỗng hoặc "*" trả về nil (cho phép tất cả)
func parseFilter(filterStr string) map[string]bool {
	filterStr = strings.TrimSpace(filterStr)
	if filterStr == "" || filterStr == "*" {
		return nil
	}

	result := make(map[string]bool)
	for _, v := range strings.Split(filterStr, ",") {
		v = strings.TrimSpace(v)
		if v == "*" {
			return nil
		}
		if v != "" {
			result[strings.ToLower(v)] = true
		}
	}
	return result
}

// Levels trả về các log levels mà hook này xử lý
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry nếu bị lọc. Entry thiếu field tương ứng thì không bị lọc theo field đó
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	if !h.Allows(entry) {
		entry.Data[filteredKey] = true
	}
	return nil
}

// Allows kiểm tra entry có qua được tất cả bộ lọc không
func (h *FilterHook) Allows(entry *logrus.Entry) bool {
	if h.allowedLogTypes != nil && !h.allowedLogTypes[strings.ToLower(entry.Level.String())] {
		return false
	}

	if h.allowedModules != nil {
		if module, ok := entry.Data["module"].(string); ok && module != "" {
			if !h.allowedModules[strings.ToLower(module)] {
				return false
			}
		}
	}

	if h.allowedEndpoints != nil {
		endpoint, ok := entry.Data["endpoint"].(string)
		if !ok || endpoint == "" {
			endpoint, ok = entry.Data["path"].(string)
		}
		if ok && endpoint != "" {
			endpoint = strings.ToLower(endpoint)
			for allowed := range h.allowedEndpoints {
				if strings.HasPrefix(endpoint, allowed) {
					return true
				}
			}
			return false
		}
	}

	return true
}
