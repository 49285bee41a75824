package loan

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// ReturnUseCase 还书用例
type ReturnUseCase struct {
	bookRepo  book.Repository
	userRepo  user.Repository
	loanRepo  loan.Repository
	txManager *sqlstore.TxManager
	events    loan.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewReturnUseCase 创建还书用例
func NewReturnUseCase(
	bookRepo book.Repository,
	userRepo user.Repository,
	loanRepo loan.Repository,
	txManager *sqlstore.TxManager,
	events loan.EventPublisher,
	logger *zap.Logger,
) *ReturnUseCase {
	return &ReturnUseCase{
		bookRepo:  bookRepo,
		userRepo:  userRepo,
		loanRepo:  loanRepo,
		txManager: txManager,
		events:    events,
		logger:    logger,
		now:       utcNow,
	}
}

// Execute 执行还书
// 1. 记录不存在 → ErrRecordNotFound;已归还 → ErrAlreadyReturned,return_date保持不变
// 2. 条件更新 WHERE returned=false,并发重复归还只有一个成功
// 3. 图书已被删除时只关闭记录,不再恢复可借状态
func (uc *ReturnUseCase) Execute(ctx context.Context, recordID uint) (detail *RecordDetail, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "loan", "loan.Return",
		attribute.Int64("record_id", int64(recordID)),
	)
	defer func() {
		tracing.EndSpan(span, err)
		metrics.RecordLoan("return", err, time.Since(start))
	}()

	detail = &RecordDetail{}
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		rec, err := uc.loanRepo.LockByID(ctx, recordID)
		if err != nil {
			return err
		}

		now := uc.now()
		if err := rec.MarkReturned(now); err != nil {
			return err
		}
		if err := uc.loanRepo.MarkReturned(ctx, rec.ID, now); err != nil {
			return err
		}

		err = uc.bookRepo.MarkAvailable(ctx, rec.BookID)
		switch {
		case errors.Is(err, book.ErrBookNotFound):
			uc.logger.Warn("归还的图书已被删除", zap.Uint("record_id", rec.ID), zap.Uint("book_id", rec.BookID))
		case err != nil:
			return err
		}

		detail.Record = rec
		b, err := uc.bookRepo.FindByID(ctx, rec.BookID)
		if detail.Book, err = orNil(b, err); err != nil {
			return err
		}
		u, err := uc.userRepo.FindByID(ctx, rec.UserID)
		if detail.User, err = orNil(u, err); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("归还图书", zap.Uint("record_id", recordID), zap.Uint("book_id", detail.Record.BookID))
	publish(ctx, uc.events, uc.logger, loan.NewEvent(loan.EventReturned, detail.Record, uc.now()))

	return detail, nil
}

// orNil 把NotFound转换为nil快照
func orNil[T any](v *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) || errors.Is(err, user.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
