// Package router gom các route của ứng dụng dưới /api/v1.
package router

import (
	"github.com/gofiber/fiber/v3"
)

// Fiber v3: middleware truyền trực tiếp vào router.Get(path, mw, handler) không được gọi.
// Luôn đăng ký qua RegisterRouteWithMiddleware (group + Use).

// ReadHandler là các route đọc mà một collection có thể mở
type ReadHandler interface {
	FindOneById(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error
}

// ReadConfig chọn route đọc nào được mở
type ReadConfig struct {
	FindById bool // Find By Id
	Paginate bool // Find With Pagination
}

// ReadOnlyConfig mở cả hai route đọc
var ReadOnlyConfig = ReadConfig{FindById: true, Paginate: true}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký route với middleware qua .Use() trên group prefix
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case fiber.MethodGet:
		routeGroup.Get(path, handler)
	case fiber.MethodPost:
		routeGroup.Post(path, handler)
	case fiber.MethodPut:
		routeGroup.Put(path, handler)
	case fiber.MethodDelete:
		routeGroup.Delete(path, handler)
	}
}

// RegisterReadRoutes đăng ký các route đọc cho một collection
func (r *Router) RegisterReadRoutes(router fiber.Router, prefix string, h ReadHandler, config ReadConfig, middlewares ...fiber.Handler) {
	if config.FindById {
		RegisterRouteWithMiddleware(router, prefix, fiber.MethodGet, "/find-by-id/:id", middlewares, h.FindOneById)
	}
	if config.Paginate {
		RegisterRouteWithMiddleware(router, prefix, fiber.MethodGet, "/find-with-pagination", middlewares, h.FindWithPagination)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng. Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
