package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 所有方法都会参与context中的事务(如果有)
// 3. 列表查询统一按ID升序,保证"前N本"的截断顺序稳定
type Repository interface {
	// Create 创建图书,ISBN重复时返回Validation错误
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查询,返回id→图书映射(不存在的id不在映射中)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Book, error)

	// List 查询全部图书
	List(ctx context.Context) ([]*Book, error)

	// ListAvailable 查询全部可借图书
	ListAvailable(ctx context.Context) ([]*Book, error)

	// Update 更新图书信息(不含available)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除,不级联借阅记录)
	Delete(ctx context.Context, id uint) error

	// LockByID 悲观锁查询图书(SELECT ... FOR UPDATE)
	LockByID(ctx context.Context, id uint) (*Book, error)

	// MarkBorrowed 条件更新:UPDATE books SET available=false WHERE id=? AND available=true
	// 未命中返回ErrBookNotAvailable
	MarkBorrowed(ctx context.Context, id uint) error

	// MarkAvailable 归还时把图书置为可借,图书已被删除时返回ErrBookNotFound
	MarkAvailable(ctx context.Context, id uint) error

	// Count 图书总数
	Count(ctx context.Context) (int64, error)

	// CountByAvailable 按可借状态统计
	CountByAvailable(ctx context.Context, available bool) (int64, error)
}
