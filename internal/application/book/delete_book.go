package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
)

// DeleteBookUseCase 删除图书
// 不级联删除借阅记录,记录里的图书快照之后显示为null
type DeleteBookUseCase struct {
	bookRepo book.Repository
	cache    SummaryCache
	logger   *zap.Logger
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookRepo book.Repository, cache SummaryCache, logger *zap.Logger) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookRepo: bookRepo, cache: cache, logger: logger}
}

// Execute 执行删除,图书不存在返回ErrBookNotFound
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.bookRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := uc.cache.Delete(ctx, id); err != nil {
		uc.logger.Warn("清除摘要缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
	uc.logger.Info("删除图书", zap.Uint("book_id", id))
	return nil
}
