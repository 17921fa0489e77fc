package basehdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"aptamer_api/internal/common"
)

// FindOneById tìm một document theo ID truyền qua URI params.
// Trả về 503 khi không cấu hình MongoDB.
func (h *BaseHandler[T]) FindOneById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		if h.BaseService == nil {
			h.HandleResponse(c, nil, common.ErrHistoryUnavailable)
			return nil
		}

		id := c.Params("id")
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' is not a valid MongoDB ObjectID (24 hex characters)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		objectID, _ := primitive.ObjectIDFromHex(id)
		data, err := h.BaseService.FindOneById(c.Context(), objectID)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindWithPagination tìm nhiều document với phân trang, mới nhất trước.
// Query params: page (mặc định 1), limit (mặc định 10) và các trường lọc được phép.
func (h *BaseHandler[T]) FindWithPagination(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		if h.BaseService == nil {
			h.HandleResponse(c, nil, common.ErrHistoryUnavailable)
			return nil
		}

		page, limit := h.ParsePagination(c)
		data, err := h.BaseService.FindWithPagination(c.Context(), h.processFilter(c), page, limit, nil)
		h.HandleResponse(c, data, err)
		return nil
	})
}
