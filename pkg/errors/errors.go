package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，HTTPStatus根据错误码族映射HTTP状态码
// 2. Message是返回给客户端的提示信息
// 3. Err是内部错误，只记录日志，不序列化
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 同一错误码视为同一类错误
// 这样预定义错误被Wrap之后仍然可以用errors.Is判断
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（数据库错误、网络错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 沿用e的错误码包装内部错误,对外提示重新格式化
// 例如 ErrBindError.Wrapf(err, "invalid request: %s", detail)
func (e *AppError) Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// Validation 存储层约束错误（如ISBN、邮箱重复）
// 与Wrap不同，这里把存储层原始错误文本作为提示返回给客户端
func Validation(err error) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: err.Error(),
		Err:     err,
	}
}

// AdapterFailure 外部模型调用失败或返回内容无法解析
func AdapterFailure(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeAdapterFailure,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 400xx: 业务规则错误（InvalidState）
// - 404xx: 资源不存在（NotFound）
// - 409xx: 请求参数错误
// - 5xxxx: 服务端错误（数据库、外部模型服务）

const (
	// 系统级错误码
	ErrCodeInternal       = 50000 // 内部错误
	ErrCodeAdapterFailure = 50010 // 外部模型服务错误

	// 资源错误
	ErrCodeUserNotFound   = 40401 // 用户不存在
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeRecordNotFound = 40403 // 借阅记录不存在

	// 业务规则错误
	ErrCodeInvalidState     = 40000 // 状态不允许此操作(通用)
	ErrCodeBookNotAvailable = 40001 // 图书已借出
	ErrCodeAlreadyReturned  = 40002 // 已归还
	ErrCodeValidation       = 40009 // 存储层约束冲突

	// 参数错误
	ErrCodeBindError = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal = New(ErrCodeInternal, "internal server error")

	ErrUserNotFound   = New(ErrCodeUserNotFound, "User not found")
	ErrBookNotFound   = New(ErrCodeBookNotFound, "Book not found")
	ErrRecordNotFound = New(ErrCodeRecordNotFound, "Borrow record not found")

	ErrBookNotAvailable = New(ErrCodeBookNotAvailable, "Book is not available")
	ErrAlreadyReturned  = New(ErrCodeAlreadyReturned, "Book already returned")

	ErrBindError = New(ErrCodeBindError, "malformed request body")
)

// =========================================
// 辅助函数
// =========================================

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "internal server error")
}

// IsNotFound 是否为资源不存在类错误
func IsNotFound(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code/100 == 404
}

// HTTPStatus 错误码族 → HTTP状态码
func HTTPStatus(code int) int {
	switch code / 100 {
	case 404:
		return http.StatusNotFound
	case 400, 409:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
