package user

import (
	"time"
)

// User 借阅者实体（聚合根）
// DDD设计说明：
// 1. 邮箱唯一性由数据库UNIQUE索引保证，Repository把冲突转换为Validation错误
// 2. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID        uint
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
func NewUser(name, email, phone string) *User {
	return &User{
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
}
