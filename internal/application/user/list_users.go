package user

import (
	"context"

	"github.com/xiebiao/library/internal/domain/user"
)

// ListUsersUseCase 借阅者列表
type ListUsersUseCase struct {
	userRepo user.Repository
}

// NewListUsersUseCase 创建列表用例
func NewListUsersUseCase(userRepo user.Repository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// Execute 查询全部借阅者（按ID升序）
func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]*user.User, error) {
	return uc.userRepo.List(ctx)
}
