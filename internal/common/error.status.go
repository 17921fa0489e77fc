package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	StatusOK      = 200 // Thành công
	StatusCreated = 201 // Tạo mới thành công

	StatusBadRequest       = 400 // Yêu cầu không hợp lệ
	StatusNotFound         = 404 // Không tìm thấy tài nguyên
	StatusMethodNotAllowed = 405 // Phương thức HTTP không được hỗ trợ
	StatusRequestTimeout   = 408 // Client hủy hoặc hết thời gian xử lý
	StatusTooManyRequests  = 429 // Quá nhiều yêu cầu

	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Response Messages
const (
	MsgSuccess            = "Operation completed successfully"
	MsgBadRequest         = "Invalid request"
	MsgNotFound           = "Resource not found"
	MsgMethodNotAllowed   = "Method not allowed"
	MsgTooManyRequests    = "Too many requests"
	MsgInternalError      = "Internal server error"
	MsgServiceUnavailable = "Service unavailable"
	MsgValidationError    = "Invalid data"
	MsgInvalidFormat      = "Invalid data format"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: APT_001)
	Category    string // Phân loại lỗi
	SubCategory string // Phân loại con
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{Code: "SYS_001", Category: "System", SubCategory: "Internal", Description: "Lỗi hệ thống nội bộ"}
	ErrCodeCanceled       = ErrorCode{Code: "SYS_002", Category: "System", SubCategory: "Canceled", Description: "Request bị hủy hoặc hết thời gian"}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput  = ErrorCode{Code: "VAL_001", Category: "Validation", SubCategory: "Input", Description: "Lỗi dữ liệu đầu vào"}
	ErrCodeValidationFormat = ErrorCode{Code: "VAL_002", Category: "Validation", SubCategory: "Format", Description: "Lỗi định dạng dữ liệu"}

	// Database Errors (DB_xxx)
	ErrCodeDatabase           = ErrorCode{Code: "DB", Category: "Database", SubCategory: "General", Description: "Lỗi cơ sở dữ liệu chung"}
	ErrCodeDatabaseConnection = ErrorCode{Code: "DB_001", Category: "Database", SubCategory: "Connection", Description: "Lỗi kết nối cơ sở dữ liệu"}
	ErrCodeDatabaseQuery      = ErrorCode{Code: "DB_002", Category: "Database", SubCategory: "Query", Description: "Lỗi truy vấn dữ liệu"}

	// Aptamer Errors (APT_xxx)
	ErrCodeAptamerGeneration    = ErrorCode{Code: "APT_001", Category: "Aptamer", SubCategory: "Generation", Description: "Không sinh được aptamer nào thỏa ràng buộc"}
	ErrCodeAptamerPointMutation = ErrorCode{Code: "APT_002", Category: "Aptamer", SubCategory: "PointMutation", Description: "Không sinh được đột biến điểm hợp lệ"}
	ErrCodeAptamerMutation      = ErrorCode{Code: "APT_003", Category: "Aptamer", SubCategory: "Mutation", Description: "Không sinh được đột biến vùng giữa hợp lệ"}
	ErrCodeAptamerPlot          = ErrorCode{Code: "APT_004", Category: "Aptamer", SubCategory: "Plot", Description: "Lỗi vẽ cấu trúc bậc hai"}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is so khớp theo mã lỗi và message (hỗ trợ errors.Is)
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code.Code == t.Code.Code && e.Message == t.Message
}

// Unwrap trả về lỗi gốc nếu Details là error
func (e *Error) Unwrap() error {
	if err, ok := e.Details.(error); ok {
		return err
	}
	return nil
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Custom errors
var (
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Invalid input data", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, MsgInvalidFormat, StatusBadRequest, nil)

	ErrNotFound           = NewError(ErrCodeDatabaseQuery, "Data not found", StatusNotFound, nil)
	ErrConnection         = NewError(ErrCodeDatabaseConnection, "Database connection error", StatusServiceUnavailable, nil)
	ErrHistoryUnavailable = NewError(ErrCodeDatabaseConnection, "Run history is not configured", StatusServiceUnavailable, nil)
	ErrRequestCanceled    = NewError(ErrCodeCanceled, "Request was canceled before completion", StatusRequestTimeout, nil)
)

// MongoDB Specific Errors
var (
	ErrMongoNetwork   = NewError(ErrCodeDatabaseConnection, "MongoDB network error", StatusServiceUnavailable, nil)
	ErrMongoTimeout   = NewError(ErrCodeDatabaseConnection, "MongoDB connection timed out", StatusServiceUnavailable, nil)
	ErrMongoQuery     = NewError(ErrCodeDatabaseQuery, "MongoDB query error", StatusInternalServerError, nil)
	ErrMongoWrite     = NewError(ErrCodeDatabaseQuery, "MongoDB write error", StatusInternalServerError, nil)
	ErrMongoDuplicate = NewError(ErrCodeDatabaseQuery, "Duplicate data in MongoDB", StatusBadRequest, nil)
	ErrMongoSystem    = NewError(ErrCodeDatabase, "MongoDB system error", StatusInternalServerError, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Lỗi đã được chuẩn hóa thì giữ nguyên
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrMongoDuplicate
	}
	if mongo.IsNetworkError(err) {
		return ErrMongoNetwork
	}
	if mongo.IsTimeout(err) {
		return ErrMongoTimeout
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch {
		case cmdErr.Code >= 100 && cmdErr.Code < 200:
			return ErrConnection
		case cmdErr.Code >= 300 && cmdErr.Code < 400:
			return ErrMongoQuery
		case cmdErr.Code >= 400 && cmdErr.Code < 500:
			return ErrMongoWrite
		case cmdErr.Code >= 500:
			return ErrMongoSystem
		}
	}

	return NewError(ErrCodeDatabase, "Database error", StatusInternalServerError, err)
}
