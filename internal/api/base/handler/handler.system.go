package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/mongo"

	"aptamer_api/internal/common"
	"aptamer_api/internal/database"
)

// SystemHandler xử lý các route liên quan đến system operations
type SystemHandler struct {
	*BaseHandler[interface{}]
	client *mongo.Client
}

// NewSystemHandler tạo một instance mới của SystemHandler. client nil nghĩa là không dùng MongoDB.
func NewSystemHandler(client *mongo.Client) *SystemHandler {
	return &SystemHandler{
		BaseHandler: &BaseHandler[interface{}]{},
		client:      client,
	}
}

// HandleHealth kiểm tra tình trạng hệ thống
// @Summary Kiểm tra tình trạng hệ thống
// @Router /system/health [get]
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}

	if h.client == nil {
		services["database"] = "disabled"
	} else if err := database.Ping(ctx, h.client); err != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		healthData["database_error"] = err.Error()
		return JSONResponse(c, common.StatusServiceUnavailable, fiber.Map{
			"code":    common.StatusServiceUnavailable,
			"message": common.MsgServiceUnavailable,
			"data":    healthData,
			"status":  "error",
		})
	} else {
		services["database"] = "ok"
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    healthData,
		"status":  "success",
	})
}
