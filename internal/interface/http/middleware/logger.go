package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/library/pkg/tracing"
)

const (
	// RequestIDHeader 请求ID响应头,客户端传入时沿用
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// Logger 请求日志中间件
// 1. 生成请求ID(或沿用客户端传入的X-Request-ID),写入响应头
// 2. 请求结束后按状态码选择日志级别:5xx=Error,4xx=Warn,其余Info
// 3. response.Error挂到c.Errors上的内部错误在这里统一记录,不返回给客户端
// 4. 超过slow的请求额外记一条Warn(调用大模型的接口通常需要数秒)
func Logger(logger *zap.Logger, slow time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= 500:
			logger.Error("请求失败", fields...)
		case status >= 400:
			logger.Warn("请求被拒绝", fields...)
		default:
			logger.Info("请求完成", fields...)
		}

		if slow > 0 && latency > slow {
			logger.Warn("慢请求",
				zap.String("request_id", requestID),
				zap.String("route", c.FullPath()),
				zap.Duration("latency", latency),
			)
		}
	}
}

// RequestID 获取当前请求ID
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
