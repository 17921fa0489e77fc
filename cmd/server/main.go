package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"aptamer_api/internal/database"
	"aptamer_api/internal/global"
	"aptamer_api/internal/logger"
)

// initLogger khởi tạo logger cho toàn bộ ứng dụng (đọc LOG_* từ môi trường)
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server, dừng khi nhận SIGINT/SIGTERM
func main_thread() {
	app := InitFiberApp(initAptamerHandler())

	cfg := global.MongoDB_ServerConfig
	log := logger.GetAppLogger()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}()

	log.WithFields(map[string]interface{}{
		"address":  cfg.Address,
		"protocol": "HTTP",
		"history":  global.MongoDB_Session != nil,
	}).Info("Starting server with HTTP")

	if err := app.Listen(cfg.Address, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

func main() {
	initLogger()
	defer logger.Shutdown()

	// Cấu hình, MongoDB (tùy chọn)
	InitGlobal()
	defer database.CloseInstance(global.MongoDB_Session)

	// Registry collections
	InitRegistry()

	main_thread()
}
