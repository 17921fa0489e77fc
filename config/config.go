package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"

	"aptamer_api/internal/aptamer/constraint"
)

// Configuration chứa toàn bộ cấu hình server, đọc từ biến môi trường
type Configuration struct {
	Address string `env:"ADDRESS" envDefault:":8080"` // Địa chỉ server

	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials

	RateLimit_Max     int  `env:"RATE_LIMIT_MAX" envDefault:"60"`       // Số request tối đa trong window
	RateLimit_Window  int  `env:"RATE_LIMIT_WINDOW" envDefault:"60"`    // Thời gian window (giây)
	RateLimit_Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"` // Bật/tắt rate limiting

	// Lưu lịch sử chạy: để trống URI thì tắt
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI"`
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"aptamer"`

	RNAPlotPath string `env:"RNAPLOT_PATH" envDefault:"RNAplot"` // Đường dẫn chương trình RNAplot

	RandomSeed                 int64 `env:"RANDOM_SEED" envDefault:"0"`                    // 0 = seed ngẫu nhiên mỗi lần chạy
	GenerationAttemptFactor    int   `env:"GENERATION_ATTEMPT_FACTOR" envDefault:"40"`     // attempts = num_aptamers × factor
	MutationAttemptFactor      int   `env:"MUTATION_ATTEMPT_FACTOR" envDefault:"50"`       // attempts = num_mutations × factor
	PointMutationAttemptFactor int   `env:"POINT_MUTATION_ATTEMPT_FACTOR" envDefault:"20"` // attempts = num_point_mutations × factor
	MaxRequestCount            int   `env:"MAX_REQUEST_COUNT" envDefault:"500"`            // Trần số ứng viên cho mỗi request
	MaxSequenceLength          int   `env:"MAX_SEQUENCE_LENGTH" envDefault:"500"`          // Trần max_length khi sinh mới (tối đa 1000)
	RequestTimeout             int   `env:"REQUEST_TIMEOUT" envDefault:"120"`              // Thời gian tối đa cho một lần sinh (giây)
}

// getEnvPath tìm config/env/<GO_ENV>.env bằng cách đi ngược lên từ thư mục hiện tại
func getEnvPath() string {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", goEnv))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig load file env (nếu có) rồi parse biến môi trường.
// Thiếu file env không phải lỗi: biến môi trường của tiến trình vẫn được dùng.
func NewConfig(files ...string) (*Configuration, error) {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			files = []string{envPath}
		}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			fmt.Printf("Bỏ qua file env %s: %v\n", f, err)
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate kiểm tra các giá trị phải dương và trần độ dài
func (c *Configuration) Validate() error {
	positive := map[string]int{
		"GENERATION_ATTEMPT_FACTOR":     c.GenerationAttemptFactor,
		"MUTATION_ATTEMPT_FACTOR":       c.MutationAttemptFactor,
		"POINT_MUTATION_ATTEMPT_FACTOR": c.PointMutationAttemptFactor,
		"MAX_REQUEST_COUNT":             c.MaxRequestCount,
		"MAX_SEQUENCE_LENGTH":           c.MaxSequenceLength,
		"REQUEST_TIMEOUT":               c.RequestTimeout,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}
	if c.MaxSequenceLength > constraint.MaxLengthLimit {
		return fmt.Errorf("MAX_SEQUENCE_LENGTH must not exceed %d, got %d", constraint.MaxLengthLimit, c.MaxSequenceLength)
	}
	return nil
}

// HistoryEnabled cho biết có cấu hình MongoDB để lưu lịch sử chạy không
func (c *Configuration) HistoryEnabled() bool {
	return c.MongoDB_ConnectionURI != ""
}
