package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/assistant"
	"github.com/xiebiao/library/internal/domain/book"
)

// RecommendBooksUseCase 根据偏好推荐可借图书
type RecommendBooksUseCase struct {
	bookRepo book.Repository
	adapter  *assistant.Adapter
}

// NewRecommendBooksUseCase 创建推荐用例
func NewRecommendBooksUseCase(bookRepo book.Repository, adapter *assistant.Adapter) *RecommendBooksUseCase {
	return &RecommendBooksUseCase{bookRepo: bookRepo, adapter: adapter}
}

// Execute 执行推荐
// 1. 没有可借图书时直接返回空列表
// 2. 模型失败返回AdapterFailure(HTTP 500),与搜索的降级策略不同
// 3. 推荐结果与图书合并,模型编造的ID被丢弃
func (uc *RecommendBooksUseCase) Execute(ctx context.Context, preferences string) ([]assistant.RecommendedBook, error) {
	available, err := uc.bookRepo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return []assistant.RecommendedBook{}, nil
	}

	recs, err := uc.adapter.Recommend(ctx, preferences, available)
	if err != nil {
		return nil, err
	}
	return assistant.ReconcileRecommendations(ctx, recs, uc.bookRepo)
}
