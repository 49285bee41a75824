package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/validator"
)

// ErrorBody 错误响应体
// 设计说明：
// 1. 成功时直接返回资源本身（数组或对象），与前端已有约定保持一致
// 2. 失败时返回{"error": "...", "code": 40001}，HTTP状态码由错误码族决定
type ErrorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 内部错误通过c.Error挂到gin上下文，由日志中间件统一记录
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}

	c.JSON(apperrors.HTTPStatus(appErr.Code), ErrorBody{
		Error: appErr.Message,
		Code:  appErr.Code,
	})
}

// BindError 参数绑定失败
// 校验失败时返回逐字段的可读信息(如 "title is required")
func BindError(c *gin.Context, err error) {
	Error(c, apperrors.ErrBindError.Wrapf(err, "invalid request: %s", validator.Describe(err)))
}

// JSON 自定义状态码
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
