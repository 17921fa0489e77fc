// Package aptamerhdl chứa Fiber handler cho API aptamer.
package aptamerhdl

import (
	"github.com/gofiber/fiber/v3"

	"aptamer_api/internal/api/aptamer/dto"
	aptamermodels "aptamer_api/internal/api/aptamer/models"
	aptamersvc "aptamer_api/internal/api/aptamer/service"
	basehdl "aptamer_api/internal/api/base/handler"
	"aptamer_api/internal/common"
	"aptamer_api/internal/logger"
)

// AptamerHandler xử lý sinh/đột biến/vẽ cấu trúc và đọc lịch sử chạy
type AptamerHandler struct {
	*basehdl.BaseHandler[aptamermodels.AptamerRun]
	AptamerService *aptamersvc.AptamerService
}

// NewAptamerHandler tạo handler; route lịch sử lọc được theo mode
func NewAptamerHandler(svc *aptamersvc.AptamerService) *AptamerHandler {
	return &AptamerHandler{
		BaseHandler: basehdl.NewBaseHandler(svc.Runs(), basehdl.FilterOptions{
			AllowedFields: []string{"mode", "requestId"},
		}),
		AptamerService: svc,
	}
}

// Generate sinh aptamer ngẫu nhiên thỏa ràng buộc GC/độ dài/Tm
// @Router /aptamers/generate [post]
func (h *AptamerHandler) Generate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := dto.NewGenerateInput()
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.AptamerService.Generate(c.Context(), input, logger.RequestID(c))
		if err == nil {
			logger.WithRequest(c).WithField("accepted", data.NumAptamers).Info("Aptamers generated")
		}
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Mutate đột biến vùng giữa, giữ flank hai đầu
// @Router /aptamers/mutate [post]
func (h *AptamerHandler) Mutate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := dto.NewMutateInput()
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.AptamerService.Mutate(c.Context(), input, logger.RequestID(c))
		h.HandleResponse(c, data, err)
		return nil
	})
}

// PointMutate sinh biến thể đột biến một vị trí
// @Router /aptamers/point-mutate [post]
func (h *AptamerHandler) PointMutate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := dto.NewPointMutateInput()
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.AptamerService.PointMutate(c.Context(), input, logger.RequestID(c))
		h.HandleResponse(c, data, err)
		return nil
	})
}

// PlotStructure trả về ảnh SVG của cấu trúc bậc hai (image/svg+xml), lỗi vẫn dùng envelope JSON
// @Router /aptamers/plot-structure [post]
func (h *AptamerHandler) PlotStructure(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.PlotInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		svg, err := h.AptamerService.Plot(c.Context(), input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		c.Set(fiber.HeaderContentType, "image/svg+xml")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="structure.svg"`)
		return c.Status(common.StatusOK).Send(svg)
	})
}
