package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/pkg/response"
)

// pathID 解析路径中的:id
// 非数字或为0时按资源不存在处理(返回notFound)
func pathID(c *gin.Context, notFound error) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, notFound)
		return 0, false
	}
	return uint(id), true
}

// bindJSON 绑定并校验请求体,失败时直接写出400
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BindError(c, err)
		return false
	}
	return true
}

// bindOptionalJSON 与bindJSON相同,但允许空请求体(字段保持零值)
func bindOptionalJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		response.BindError(c, err)
		return false
	}
	return true
}
