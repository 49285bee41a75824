package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/assistant"
	"github.com/xiebiao/library/internal/domain/book"
)

// SearchBooksUseCase 智能搜索
type SearchBooksUseCase struct {
	bookRepo book.Repository
	adapter  *assistant.Adapter
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(bookRepo book.Repository, adapter *assistant.Adapter) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookRepo: bookRepo, adapter: adapter}
}

// Execute 执行搜索
// 1. 查询为空时返回全部图书,不调用模型
// 2. 模型返回的ID按原顺序回查图书,不存在的ID静默跳过
// 3. 模型失败时结果为空数组(搜索永远不返回AI错误)
func (uc *SearchBooksUseCase) Execute(ctx context.Context, query string) ([]*book.Book, error) {
	all, err := uc.bookRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}

	ids := uc.adapter.SmartSearch(ctx, query, all)
	return assistant.CollectBooks(assistant.ReconcileSearch(ctx, ids, uc.bookRepo))
}
