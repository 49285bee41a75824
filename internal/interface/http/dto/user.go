package dto

import "github.com/xiebiao/library/internal/domain/user"

// CreateUserRequest HTTP新增用户请求
// 邮箱唯一性由数据库保证,冲突时返回400和数据库错误信息
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,max=100" example:"John Doe"`
	Email string `json:"email" binding:"required,email,max=120" example:"john@example.com"`
	Phone string `json:"phone" binding:"max=20" example:"555-0123"`
}

// UserResponse 用户响应
type UserResponse struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"John Doe"`
	Email     string `json:"email" example:"john@example.com"`
	Phone     string `json:"phone" example:"555-0123"`
	CreatedAt string `json:"created_at" example:"2025-01-15T10:30:00Z"`
}

// NewUserResponse 领域实体 → HTTP响应
func NewUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: formatTime(u.CreatedAt),
	}
}

// NewUserList 列表响应
func NewUserList(users []*user.User) []*UserResponse {
	items := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, NewUserResponse(u))
	}
	return items
}
