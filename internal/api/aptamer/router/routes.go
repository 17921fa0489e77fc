// Package aptamerrouter đăng ký route cho domain aptamer.
package aptamerrouter

import (
	"github.com/gofiber/fiber/v3"

	aptamerhdl "aptamer_api/internal/api/aptamer/handler"
	apirouter "aptamer_api/internal/api/router"
)

// Register trả về RegisterFunc cho nhóm /aptamers
func Register(h *aptamerhdl.AptamerHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		const prefix = "/aptamers"
		apirouter.RegisterRouteWithMiddleware(v1, prefix, fiber.MethodPost, "/generate", nil, h.Generate)
		apirouter.RegisterRouteWithMiddleware(v1, prefix, fiber.MethodPost, "/mutate", nil, h.Mutate)
		apirouter.RegisterRouteWithMiddleware(v1, prefix, fiber.MethodPost, "/point-mutate", nil, h.PointMutate)
		apirouter.RegisterRouteWithMiddleware(v1, prefix, fiber.MethodPost, "/plot-structure", nil, h.PlotStructure)
		r.RegisterReadRoutes(v1, prefix+"/runs", h, apirouter.ReadOnlyConfig)
		return nil
	}
}
