package user

import (
	"context"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ErrUserNotFound 用户不存在
var ErrUserNotFound = apperrors.ErrUserNotFound

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/sqlstore
// 3. 便于单元测试（Mock此接口）
type Repository interface {
	// Create 创建用户
	// 注意：如果邮箱已存在，返回Validation错误（携带存储层原始信息）
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	// 如果不存在，返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByIDs 批量查询，用于借阅记录序列化时构建查找表
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*User, error)

	// List 查询全部用户（按ID升序）
	List(ctx context.Context) ([]*User, error)

	// Count 用户总数
	Count(ctx context.Context) (int64, error)
}
