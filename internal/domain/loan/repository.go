package loan

import (
	"context"
	"time"
)

// Repository 借阅记录仓储接口
// 教学要点:
// 1. 借阅/归还的所有写操作都在TxManager开启的事务中调用
// 2. MarkReturned是条件更新(WHERE returned=false),并发重复归还只有一个能成功
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, record *Record) error

	// FindByID 根据ID查询
	FindByID(ctx context.Context, id uint) (*Record, error)

	// LockByID 悲观锁查询借阅记录(SELECT ... FOR UPDATE)
	LockByID(ctx context.Context, id uint) (*Record, error)

	// MarkReturned 条件更新:
	// UPDATE borrow_records SET returned=true, return_date=? WHERE id=? AND returned=false
	// 未命中返回ErrAlreadyReturned
	MarkReturned(ctx context.Context, id uint, returnDate time.Time) error

	// List 查询全部借阅记录(按ID升序)
	List(ctx context.Context) ([]*Record, error)

	// ListOpen 查询全部未归还记录
	ListOpen(ctx context.Context) ([]*Record, error)

	// CountOpen 未归还记录数
	CountOpen(ctx context.Context) (int64, error)
}
