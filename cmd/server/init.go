package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"aptamer_api/config"
	aptamermodels "aptamer_api/internal/api/aptamer/models"
	"aptamer_api/internal/database"
	"aptamer_api/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database (bỏ qua nếu không cấu hình)
}

// Hàm khởi tạo validator (no_xss, rna_sequence, dot_bracket)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to initialize config: %v", err)
	}
	global.MongoDB_ServerConfig = cfg
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database. Lỗi kết nối không dừng server: chỉ tắt lưu lịch sử.
func initDatabase_MongoDB() {
	cfg := global.MongoDB_ServerConfig
	if !cfg.HistoryEnabled() {
		logrus.Warn("MONGODB_CONNECTION_URI is empty, run history is disabled")
		return
	}

	client, err := database.GetInstance(cfg)
	if err != nil {
		logrus.WithError(err).Warn("MongoDB unavailable, run history is disabled")
		return
	}
	global.MongoDB_Session = client

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := database.EnsureCollections(ctx, client, cfg.MongoDB_DBName, []string{global.MongoDB_ColNames.AptamerRuns})
	if err != nil {
		logrus.WithError(err).Warn("Failed to ensure collections")
		return
	}
	logrus.Info("Ensured database and collections")

	if err := database.CreateIndexes(ctx, db.Collection(global.MongoDB_ColNames.AptamerRuns), aptamermodels.AptamerRun{}); err != nil {
		logrus.WithError(err).Warn("Failed to create indexes")
	}
}
