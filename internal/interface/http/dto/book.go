package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
)

// TimeFormat 响应中时间字段的格式(UTC)
const TimeFormat = time.RFC3339

// CreateBookRequest HTTP新增图书请求
// validator tag说明:
// - required: 必填字段
// - isbn: 自定义ISBN格式校验(在pkg/validator中注册)
// - description为空时由大模型自动生成摘要
type CreateBookRequest struct {
	Title           string `json:"title" binding:"required,max=200" example:"1984"`
	Author          string `json:"author" binding:"required,max=150" example:"George Orwell"`
	ISBN            string `json:"isbn" binding:"required,isbn" example:"978-0-452-28423-4"`
	Genre           string `json:"genre" binding:"max=100" example:"Dystopian Fiction"`
	PublicationYear *int   `json:"publication_year" binding:"omitempty,min=0,max=9999" example:"1949"`
	Description     string `json:"description" example:"A dystopian social science fiction novel"`
}

// UpdateBookRequest HTTP部分更新请求
// 指针字段为nil表示请求中没有该字段,保持原值;
// publication_year显式传null表示清空出版年份
type UpdateBookRequest struct {
	Title           *string `json:"title" binding:"omitempty,max=200"`
	Author          *string `json:"author" binding:"omitempty,max=150"`
	ISBN            *string `json:"isbn" binding:"omitempty,isbn"`
	Genre           *string `json:"genre" binding:"omitempty,max=100"`
	PublicationYear *int    `json:"publication_year" binding:"omitempty,min=0,max=9999"`
	Description     *string `json:"description"`
	Available       *bool   `json:"available"`

	clearPublicationYear bool
}

// UnmarshalJSON 区分publication_year缺省与显式null
func (r *UpdateBookRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateBookRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*r = UpdateBookRequest(p)
	if raw, ok := fields["publication_year"]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		r.clearPublicationYear = true
	}
	return nil
}

// Patch 转换为领域层的部分更新
func (r UpdateBookRequest) Patch() book.Patch {
	return book.Patch{
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		Genre:           r.Genre,
		PublicationYear: r.PublicationYear,
		Description:     r.Description,
		Available:       r.Available,

		ClearPublicationYear: r.clearPublicationYear,
	}
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID              uint   `json:"id" example:"1"`
	Title           string `json:"title" example:"1984"`
	Author          string `json:"author" example:"George Orwell"`
	ISBN            string `json:"isbn" example:"978-0-452-28423-4"`
	Genre           string `json:"genre" example:"Dystopian Fiction"`
	PublicationYear *int   `json:"publication_year" example:"1949"`
	Description     string `json:"description" example:"A dystopian social science fiction novel"`
	Available       bool   `json:"available" example:"true"`
	CreatedAt       string `json:"created_at" example:"2025-01-15T10:30:00Z"`
}

// NewBookResponse 领域实体 → HTTP响应
func NewBookResponse(b *book.Book) *BookResponse {
	if b == nil {
		return nil
	}
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Genre:           b.Genre,
		PublicationYear: b.PublicationYear,
		Description:     b.Description,
		Available:       b.Available,
		CreatedAt:       formatTime(b.CreatedAt),
	}
}

// NewBookList 列表响应,空列表序列化为[]而不是null
func NewBookList(books []*book.Book) []*BookResponse {
	items := make([]*BookResponse, 0, len(books))
	for _, b := range books {
		items = append(items, NewBookResponse(b))
	}
	return items
}

// SummaryResponse 图书摘要响应
type SummaryResponse struct {
	Summary string `json:"summary" example:"A chilling portrait of a totalitarian future."`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}
