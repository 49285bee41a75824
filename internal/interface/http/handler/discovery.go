package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// DiscoveryHandler 智能搜索与推荐
//
// 两个接口对模型失败的处理不同:
//   - 搜索失败时返回空数组(200)
//   - 推荐失败时返回500和错误信息
type DiscoveryHandler struct {
	search    *appbook.SearchBooksUseCase
	recommend *appbook.RecommendBooksUseCase
}

// NewDiscoveryHandler 创建处理器
func NewDiscoveryHandler(search *appbook.SearchBooksUseCase, recommend *appbook.RecommendBooksUseCase) *DiscoveryHandler {
	return &DiscoveryHandler{search: search, recommend: recommend}
}

// Search 智能搜索
// @Summary      智能搜索
// @Description  由大模型按相关度排序;query为空时返回全部图书
// @Tags         发现
// @Accept       json
// @Produce      json
// @Param        request body dto.SearchRequest false "搜索条件"
// @Success      200 {array} dto.BookResponse
// @Router       /api/search [post]
func (h *DiscoveryHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	books, err := h.search.Execute(c.Request.Context(), req.Query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBookList(books))
}

// Recommend 个性化推荐
// @Summary      图书推荐
// @Description  从可借图书中推荐最多3本
// @Tags         发现
// @Accept       json
// @Produce      json
// @Param        request body dto.RecommendRequest false "阅读偏好"
// @Success      200 {object} dto.RecommendationsResponse
// @Failure      500 {object} response.ErrorBody "模型调用或解析失败"
// @Router       /api/recommendations [post]
func (h *DiscoveryHandler) Recommend(c *gin.Context) {
	var req dto.RecommendRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	recs, err := h.recommend.Execute(c.Request.Context(), req.Preferences)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewRecommendationsResponse(recs))
}
