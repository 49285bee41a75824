package loan

import (
	"context"
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

// BorrowUseCase 借书用例
//
// 并发问题:两个请求同时借同一本书
// 错误实现:
//  1. 查询图书 → available=true(两个请求都读到)
//  2. 创建借阅记录
//  3. available=false
//     结果:同一本书有两条未归还记录
//
// 正确实现:
//  1. SELECT ... FOR UPDATE 锁定图书行(MySQL)
//  2. 校验可借
//  3. 创建借阅记录
//  4. UPDATE books SET available=false WHERE id=? AND available=true
//     未命中说明被抢先借出,整个事务回滚(SQLite没有行锁,靠这一步兜底)
type BorrowUseCase struct {
	bookRepo  book.Repository
	userRepo  user.Repository
	loanRepo  loan.Repository
	txManager *sqlstore.TxManager
	events    loan.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewBorrowUseCase 创建借书用例
func NewBorrowUseCase(
	bookRepo book.Repository,
	userRepo user.Repository,
	loanRepo loan.Repository,
	txManager *sqlstore.TxManager,
	events loan.EventPublisher,
	logger *zap.Logger,
) *BorrowUseCase {
	return &BorrowUseCase{
		bookRepo:  bookRepo,
		userRepo:  userRepo,
		loanRepo:  loanRepo,
		txManager: txManager,
		events:    events,
		logger:    logger,
		now:       utcNow,
	}
}

// BorrowRequest 借书请求
type BorrowRequest struct {
	BookID uint
	UserID uint
}

// Execute 执行借书
// 错误:图书/借阅者不存在 → NotFound;图书已借出 → ErrBookNotAvailable
func (uc *BorrowUseCase) Execute(ctx context.Context, req BorrowRequest) (detail *RecordDetail, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "loan", "loan.Borrow",
		attribute.Int64("book_id", int64(req.BookID)),
		attribute.Int64("user_id", int64(req.UserID)),
	)
	defer func() {
		tracing.EndSpan(span, err)
		metrics.RecordLoan("borrow", err, time.Since(start))
	}()

	var (
		record *loan.Record
		b      *book.Book
		u      *user.User
	)
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		var err error
		if b, err = uc.bookRepo.LockByID(ctx, req.BookID); err != nil {
			return err
		}
		if u, err = uc.userRepo.FindByID(ctx, req.UserID); err != nil {
			return err
		}
		if err := b.CheckBorrowable(); err != nil {
			return err
		}

		record = loan.NewRecord(b.ID, u.ID, uc.now())
		if err := uc.loanRepo.Create(ctx, record); err != nil {
			return err
		}
		if err := uc.bookRepo.MarkBorrowed(ctx, b.ID); err != nil {
			return err
		}
		b.Available = false
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("借出图书",
		zap.Uint("record_id", record.ID),
		zap.Uint("book_id", b.ID),
		zap.Uint("user_id", u.ID),
	)
	publish(ctx, uc.events, uc.logger, loan.NewEvent(loan.EventBorrowed, record, uc.now()))

	return &RecordDetail{Record: record, Book: b, User: u}, nil
}

// publish 提交后发布事件,失败只记录日志
func publish(ctx context.Context, events loan.EventPublisher, logger *zap.Logger, evt loan.Event) {
	if err := events.Publish(ctx, evt); err != nil {
		logger.Warn("发布借阅事件失败",
			zap.String("type", evt.Type),
			zap.Uint("record_id", evt.RecordID),
			zap.Error(err),
		)
	}
}
