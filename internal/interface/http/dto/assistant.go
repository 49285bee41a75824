package dto

import (
	"github.com/xiebiao/library/internal/domain/assistant"
)

// SearchRequest 智能搜索请求,query为空时返回全部图书
type SearchRequest struct {
	Query string `json:"query" example:"classic dystopian novels"`
}

// RecommendRequest 推荐请求
type RecommendRequest struct {
	Preferences string `json:"preferences" example:"I enjoy science fiction with political themes"`
}

// RecommendationResponse 单条推荐
type RecommendationResponse struct {
	BookID int64         `json:"book_id" example:"2"`
	Reason string        `json:"reason" example:"Matches your interest in political fiction"`
	Rating int           `json:"rating" example:"9"`
	Book   *BookResponse `json:"book"`
}

// RecommendationsResponse 推荐结果
type RecommendationsResponse struct {
	Recommendations []RecommendationResponse `json:"recommendations"`
}

// NewRecommendationsResponse 对账后的推荐 → HTTP响应
func NewRecommendationsResponse(recs []assistant.RecommendedBook) *RecommendationsResponse {
	items := make([]RecommendationResponse, 0, len(recs))
	for _, r := range recs {
		items = append(items, RecommendationResponse{
			BookID: r.BookID,
			Reason: r.Reason,
			Rating: r.Rating,
			Book:   NewBookResponse(r.Book),
		})
	}
	return &RecommendationsResponse{Recommendations: items}
}
