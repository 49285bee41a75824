package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. ISBN作为业务唯一标识(数据库层保证唯一性)
// 2. Available是图书的借阅状态,只允许通过借阅/归还流程翻转
// 状态机: Available → (Borrow) → OnLoan → (Return) → Available
// 3. CreatedAt创建后不可变
type Book struct {
	ID              uint
	Title           string // 书名
	Author          string // 作者
	ISBN            string // ISBN号(国际标准书号)
	Genre           string // 类别
	PublicationYear *int   // 出版年份(可选)
	Description     string // 图书描述
	Available       bool   // 是否可借
	CreatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// 新书默认可借
func NewBook(title, author, isbn, genre string, publicationYear *int, description string) *Book {
	return &Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		Genre:           genre,
		PublicationYear: publicationYear,
		Description:     description,
		Available:       true,
		CreatedAt:       time.Now().UTC(),
	}
}

// CheckBorrowable 借出前的状态检查(领域行为)
// 注意:这只是锁定行之后的业务校验,真正的并发保护由仓储层的条件更新完成
func (b *Book) CheckBorrowable() error {
	if !b.Available {
		return ErrBookNotAvailable
	}
	return nil
}

// Patch 部分更新字段
// nil表示该字段未出现在请求中,保持原值
type Patch struct {
	Title           *string
	Author          *string
	ISBN            *string
	Genre           *string
	PublicationYear *int
	Description     *string
	Available       *bool

	// ClearPublicationYear 请求中publication_year为null
	ClearPublicationYear bool
}

// Apply 应用部分更新
// 业务规则:available只能由借阅/归还流程翻转,
// 请求中携带的available必须与当前状态一致,否则拒绝整个更新
func (b *Book) Apply(p Patch) error {
	if p.Available != nil && *p.Available != b.Available {
		return ErrAvailabilityConflict
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	switch {
	case p.PublicationYear != nil:
		year := *p.PublicationYear
		b.PublicationYear = &year
	case p.ClearPublicationYear:
		b.PublicationYear = nil
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	return nil
}
