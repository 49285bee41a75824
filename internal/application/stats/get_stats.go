package stats

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/persistence/sqlstore"
)

// Stats 馆藏统计
type Stats struct {
	TotalBooks     int64 `json:"total_books"`
	AvailableBooks int64 `json:"available_books"`
	BorrowedBooks  int64 `json:"borrowed_books"`
	TotalUsers     int64 `json:"total_users"`
	ActiveBorrows  int64 `json:"active_borrows"`
}

// GetStatsUseCase 统计用例
// 五个计数在同一个事务里读取,结果是一致快照
// (available_books + borrowed_books == total_books)
type GetStatsUseCase struct {
	bookRepo  book.Repository
	userRepo  user.Repository
	loanRepo  loan.Repository
	txManager *sqlstore.TxManager
}

// NewGetStatsUseCase 创建统计用例
func NewGetStatsUseCase(
	bookRepo book.Repository,
	userRepo user.Repository,
	loanRepo loan.Repository,
	txManager *sqlstore.TxManager,
) *GetStatsUseCase {
	return &GetStatsUseCase{
		bookRepo:  bookRepo,
		userRepo:  userRepo,
		loanRepo:  loanRepo,
		txManager: txManager,
	}
}

// Execute 执行统计
func (uc *GetStatsUseCase) Execute(ctx context.Context) (*Stats, error) {
	var s Stats
	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		var err error
		if s.TotalBooks, err = uc.bookRepo.Count(ctx); err != nil {
			return err
		}
		if s.AvailableBooks, err = uc.bookRepo.CountByAvailable(ctx, true); err != nil {
			return err
		}
		if s.BorrowedBooks, err = uc.bookRepo.CountByAvailable(ctx, false); err != nil {
			return err
		}
		if s.TotalUsers, err = uc.userRepo.Count(ctx); err != nil {
			return err
		}
		if s.ActiveBorrows, err = uc.loanRepo.CountOpen(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}
