package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/assistant"
	"github.com/xiebiao/library/internal/domain/book"
)

// CreateBookUseCase 新增图书用例
// 没有描述时先让模型生成摘要作为描述;
// 模型失败时错误文本本身会成为描述,不影响新增
type CreateBookUseCase struct {
	bookRepo book.Repository
	adapter  *assistant.Adapter
	logger   *zap.Logger
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(bookRepo book.Repository, adapter *assistant.Adapter, logger *zap.Logger) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookRepo: bookRepo,
		adapter:  adapter,
		logger:   logger,
	}
}

// CreateBookRequest 新增图书请求
type CreateBookRequest struct {
	Title           string
	Author          string
	ISBN            string
	Genre           string
	PublicationYear *int
	Description     string
}

// Execute 执行新增
// ISBN重复时返回Validation错误(400,携带存储层原始信息)
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*book.Book, error) {
	description := req.Description
	if description == "" {
		// 模型调用在事务之外,不占用数据库连接
		description = uc.adapter.Summarize(ctx, assistant.SummaryInput{
			Title:  req.Title,
			Author: req.Author,
			Genre:  req.Genre,
		})
	}

	b := book.NewBook(req.Title, req.Author, req.ISBN, req.Genre, req.PublicationYear, description)
	if err := uc.bookRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	uc.logger.Info("新增图书", zap.Uint("book_id", b.ID), zap.String("isbn", b.ISBN))
	return b, nil
}
