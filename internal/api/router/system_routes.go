package router

import (
	"github.com/gofiber/fiber/v3"

	basehdl "aptamer_api/internal/api/base/handler"
)

// SystemRoutes trả về RegisterFunc cho nhóm /system
func SystemRoutes(h *basehdl.SystemHandler) RegisterFunc {
	return func(v1 fiber.Router, r *Router) error {
		RegisterRouteWithMiddleware(v1, "/system", fiber.MethodGet, "/health", nil, h.HandleHealth)
		return nil
	}
}
