package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/health"
	"github.com/xiebiao/library/internal/application/stats"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// SystemHandler 统计与健康检查
type SystemHandler struct {
	stats  *stats.GetStatsUseCase
	health *health.CheckUseCase
}

// NewSystemHandler 创建处理器
func NewSystemHandler(getStats *stats.GetStatsUseCase, check *health.CheckUseCase) *SystemHandler {
	return &SystemHandler{stats: getStats, health: check}
}

// Stats 馆藏统计
// @Summary      统计信息
// @Tags         系统
// @Produce      json
// @Success      200 {object} dto.StatsResponse
// @Router       /api/stats [get]
func (h *SystemHandler) Stats(c *gin.Context) {
	s, err := h.stats.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewStatsResponse(s))
}

// Health 健康检查
// @Summary      健康检查
// @Description  检查数据库连接,并(可配置)实际调用一次大模型
// @Tags         系统
// @Produce      json
// @Success      200 {object} dto.HealthResponse
// @Failure      500 {object} dto.HealthResponse
// @Router       /api/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	report := h.health.Execute(c.Request.Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusInternalServerError
	}
	response.JSON(c, status, dto.NewHealthResponse(report))
}
