package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/user"
)

// CreateUserUseCase 登记借阅者
// 设计说明：
// 1. 借阅者没有密码，本服务不做认证
// 2. 邮箱唯一性由数据库约束保证，冲突时返回Validation错误（400）
type CreateUserUseCase struct {
	userRepo user.Repository
	logger   *zap.Logger
}

// NewCreateUserUseCase 创建登记用例
func NewCreateUserUseCase(userRepo user.Repository, logger *zap.Logger) *CreateUserUseCase {
	return &CreateUserUseCase{userRepo: userRepo, logger: logger}
}

// CreateUserRequest 登记请求
type CreateUserRequest struct {
	Name  string
	Email string
	Phone string
}

// Execute 执行登记
func (uc *CreateUserUseCase) Execute(ctx context.Context, req CreateUserRequest) (*user.User, error) {
	u := user.NewUser(req.Name, req.Email, req.Phone)
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Info("登记借阅者", zap.Uint("user_id", u.ID))
	return u, nil
}
