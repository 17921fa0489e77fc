package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"aptamer_api/internal/common"
	"aptamer_api/internal/logger"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandler bọc các handler với recover để bắt panic và xử lý lỗi an toàn.
// Server luôn trả về response cho client, kể cả khi có panic xảy ra.
func (h *BaseHandler[T]) SafeHandler(c fiber.Ctx, handler func() error) error {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("stack", string(debug.Stack())).Errorf("panic in handler: %v", r)
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Unexpected system error: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// errorBody dựng envelope lỗi từ một error bất kỳ
func errorBody(err error) (int, fiber.Map) {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		body := fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"status":  "error",
		}
		switch d := customErr.Details.(type) {
		case nil:
		case error:
			if msgs := validationMessages(d); msgs != nil {
				body["details"] = msgs
			} else {
				body["details"] = d.Error()
			}
		default:
			body["details"] = d
		}
		return customErr.StatusCode, body
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiber.Map{
			"code":    fiberErr.Code,
			"message": fiberErr.Message,
			"status":  "error",
		}
	}
	return common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": err.Error(),
		"status":  "error",
	}
}

// ErrorResponse ghi envelope lỗi (dùng cả bởi ErrorHandler của Fiber)
func ErrorResponse(c fiber.Ctx, err error) error {
	status, body := errorBody(err)
	if status >= common.StatusInternalServerError {
		logger.WithRequest(c).WithError(err).Error("request failed")
	}
	return JSONResponse(c, status, body)
}

// HandleResponse xử lý và chuẩn hóa response trả về cho client.
// Format: {code, message, data, status}
func (h *BaseHandler[T]) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		_ = ErrorResponse(c, err)
		return
	}

	_ = JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}
