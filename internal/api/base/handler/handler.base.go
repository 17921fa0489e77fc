// Package basehdl chứa BaseHandler dùng chung cho các Fiber handler: parse/validate input,
// chuẩn hóa response và các route đọc (find-by-id, phân trang) trên BaseServiceMongo.
package basehdl

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	basesvc "aptamer_api/internal/api/base/service"
	"aptamer_api/internal/common"
	"aptamer_api/internal/global"
)

// FilterOptions cấu hình các trường được phép lọc qua query string (so khớp bằng)
type FilterOptions struct {
	AllowedFields []string
}

// BaseHandler là base handler cho các Fiber handler.
//
// Type parameters:
// - T: Kiểu dữ liệu của model lưu trong MongoDB
type BaseHandler[T any] struct {
	BaseService   basesvc.BaseServiceMongo[T] // nil khi không cấu hình MongoDB
	filterOptions FilterOptions
}

// NewBaseHandler tạo mới một BaseHandler với BaseService được cung cấp (có thể nil)
func NewBaseHandler[T any](baseService basesvc.BaseServiceMongo[T], filterOptions FilterOptions) *BaseHandler[T] {
	return &BaseHandler[T]{
		BaseService:   baseService,
		filterOptions: filterOptions,
	}
}

// validateInput validate struct bằng validator toàn cục
func (h *BaseHandler[T]) validateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ParseRequestBody parse và validate dữ liệu từ request body.
// Sử dụng json.Decoder với UseNumber() để xử lý chính xác các số.
// Giá trị đã có sẵn trong input (mặc định) được giữ nếu body không gửi trường đó.
func (h *BaseHandler[T]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err)
	}
	return h.validateInput(input)
}

// ParsePagination đọc page (mặc định 1) và limit (mặc định 10) từ query string
func (h *BaseHandler[T]) ParsePagination(c fiber.Ctx) (int64, int64) {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 10
	}
	return page, limit
}

// processFilter tạo filter so khớp bằng từ các query param được phép
func (h *BaseHandler[T]) processFilter(c fiber.Ctx) bson.M {
	filter := bson.M{}
	for _, field := range h.filterOptions.AllowedFields {
		if v := c.Query(field); v != "" {
			filter[field] = v
		}
	}
	return filter
}

// validationMessages trả về danh sách lỗi validate dạng "Field: tag"
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Field() + ": " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return msgs
}
