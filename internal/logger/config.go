package logger

import (
	"os"
	"strconv"
	"strings"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	// Log Level: trace, debug, info, warn, error, fatal
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Log Format: json, text
	Format string `env:"LOG_FORMAT" envDefault:"text"`

	// Log Output: file, stdout, both, none
	Output string `env:"LOG_OUTPUT" envDefault:"both"`

	// Xoay vòng file log
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"` // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"7"` // ngày
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"`

	LogPath    string `env:"LOG_PATH" envDefault:"./logs"`
	AppFile    string `env:"LOG_APP_FILE" envDefault:"app.log"`
	EngineFile string `env:"LOG_ENGINE_FILE" envDefault:"engine.log"`
	ErrorFile  string `env:"LOG_ERROR_FILE" envDefault:"error.log"`

	// Bộ lọc: danh sách phân cách bằng dấu phẩy, rỗng hoặc "*" = cho phép tất cả
	FilterModules   string `env:"LOG_FILTER_MODULES" envDefault:"*"`
	FilterEndpoints string `env:"LOG_FILTER_ENDPOINTS" envDefault:"*"`
	FilterLogTypes  string `env:"LOG_FILTER_TYPES" envDefault:"*"`
}

// DefaultConfig trả về cấu hình mặc định theo GO_ENV, có override từ biến môi trường LOG_*
func DefaultConfig() *LogConfig {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	cfg := &LogConfig{
		Output:          "both",
		MaxSize:         100,
		MaxBackups:      7,
		MaxAge:          7,
		Compress:        true,
		LogPath:         "./logs",
		AppFile:         "app.log",
		EngineFile:      "engine.log",
		ErrorFile:       "error.log",
		FilterModules:   "*",
		FilterEndpoints: "*",
		FilterLogTypes:  "*",
	}

	if env == "development" {
		cfg.Level = "debug"
		cfg.Format = "text"
	} else {
		cfg.Level = "info"
		cfg.Format = "json"
	}

	overrideString := func(key string, dst *string, lower bool) {
		if v := os.Getenv(key); v != "" {
			if lower {
				v = strings.ToLower(v)
			}
			*dst = v
		}
	}
	overrideString("LOG_LEVEL", &cfg.Level, true)
	overrideString("LOG_FORMAT", &cfg.Format, true)
	overrideString("LOG_OUTPUT", &cfg.Output, true)
	overrideString("LOG_PATH", &cfg.LogPath, false)
	overrideString("LOG_APP_FILE", &cfg.AppFile, false)
	overrideString("LOG_ENGINE_FILE", &cfg.EngineFile, false)
	overrideString("LOG_ERROR_FILE", &cfg.ErrorFile, false)
	overrideString("LOG_FILTER_MODULES", &cfg.FilterModules, false)
	overrideString("LOG_FILTER_ENDPOINTS", &cfg.FilterEndpoints, false)
	overrideString("LOG_FILTER_TYPES", &cfg.FilterLogTypes, false)

	if s := os.Getenv("LOG_MAX_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.MaxSize = n
		}
	}
	if s := os.Getenv("LOG_MAX_BACKUPS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			cfg.MaxBackups = n
		}
	}
	if s := os.Getenv("LOG_MAX_AGE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.MaxAge = n
		}
	}
	if s := os.Getenv("LOG_COMPRESS"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			cfg.Compress = b
		}
	}

	return cfg
}
