package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/persistence/sqlstore"
)

// UpdateBookUseCase 部分更新图书
type UpdateBookUseCase struct {
	bookRepo  book.Repository
	txManager *sqlstore.TxManager
	cache     SummaryCache
	logger    *zap.Logger
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(
	bookRepo book.Repository,
	txManager *sqlstore.TxManager,
	cache SummaryCache,
	logger *zap.Logger,
) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookRepo:  bookRepo,
		txManager: txManager,
		cache:     cache,
		logger:    logger,
	}
}

// UpdateBookRequest 更新请求,Patch中为nil的字段保持原值
type UpdateBookRequest struct {
	ID    uint
	Patch book.Patch
}

// Execute 执行更新
// 1. 锁定图书行,避免与借阅/归还交错覆盖available
// 2. available只能与当前状态一致(借阅状态只由借阅/归还翻转)
// 3. 提交后清除摘要缓存(书名、作者等变化后旧摘要失效)
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*book.Book, error) {
	var updated *book.Book
	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		b, err := uc.bookRepo.LockByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if err := b.Apply(req.Patch); err != nil {
			return err
		}
		if err := uc.bookRepo.Update(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Delete(ctx, req.ID); err != nil {
		uc.logger.Warn("清除摘要缓存失败", zap.Uint("book_id", req.ID), zap.Error(err))
	}
	return updated, nil
}
