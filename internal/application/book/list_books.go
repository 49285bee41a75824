package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// ListBooksUseCase 图书列表(全部图书,按ID升序,不分页)
type ListBooksUseCase struct {
	bookRepo book.Repository
}

// NewListBooksUseCase 创建列表用例
func NewListBooksUseCase(bookRepo book.Repository) *ListBooksUseCase {
	return &ListBooksUseCase{bookRepo: bookRepo}
}

// Execute 执行查询
func (uc *ListBooksUseCase) Execute(ctx context.Context) ([]*book.Book, error) {
	return uc.bookRepo.List(ctx)
}
