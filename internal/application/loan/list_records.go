package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/user"
)

// ListRecordsUseCase 借阅记录列表
// 图书和借阅者各批量查询一次,避免逐条回查(N+1)
type ListRecordsUseCase struct {
	bookRepo book.Repository
	userRepo user.Repository
	loanRepo loan.Repository
}

// NewListRecordsUseCase 创建列表用例
func NewListRecordsUseCase(bookRepo book.Repository, userRepo user.Repository, loanRepo loan.Repository) *ListRecordsUseCase {
	return &ListRecordsUseCase{bookRepo: bookRepo, userRepo: userRepo, loanRepo: loanRepo}
}

// Execute 查询全部借阅记录(按ID升序)
func (uc *ListRecordsUseCase) Execute(ctx context.Context) ([]*RecordDetail, error) {
	records, err := uc.loanRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	bookIDs := make([]uint, len(records))
	userIDs := make([]uint, len(records))
	for i, r := range records {
		bookIDs[i] = r.BookID
		userIDs[i] = r.UserID
	}

	books, err := uc.bookRepo.FindByIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	details := make([]*RecordDetail, len(records))
	for i, r := range records {
		details[i] = &RecordDetail{
			Record: r,
			Book:   books[r.BookID],
			User:   users[r.UserID],
		}
	}
	return details, nil
}
