package dto

import (
	apploan "github.com/xiebiao/library/internal/application/loan"
)

// BorrowRequest 借书请求
type BorrowRequest struct {
	BookID uint `json:"book_id" example:"1"`
	UserID uint `json:"user_id" example:"1"`
}

// ReturnRequest 还书请求
type ReturnRequest struct {
	RecordID uint `json:"record_id" example:"1"`
}

// RecordResponse 借阅记录响应
// book/user是查询时的快照;图书或用户已被删除时为null
type RecordResponse struct {
	ID         uint          `json:"id" example:"1"`
	BookID     uint          `json:"book_id" example:"1"`
	UserID     uint          `json:"user_id" example:"1"`
	BorrowDate string        `json:"borrow_date" example:"2025-01-15T10:30:00Z"`
	ReturnDate *string       `json:"return_date"`
	Returned   bool          `json:"returned" example:"false"`
	Book       *BookResponse `json:"book"`
	User       *UserResponse `json:"user"`
}

// NewRecordResponse 借阅详情 → HTTP响应
func NewRecordResponse(d *apploan.RecordDetail) *RecordResponse {
	rec := d.Record
	resp := &RecordResponse{
		ID:         rec.ID,
		BookID:     rec.BookID,
		UserID:     rec.UserID,
		BorrowDate: formatTime(rec.BorrowDate),
		Returned:   rec.Returned,
		Book:       NewBookResponse(d.Book),
		User:       NewUserResponse(d.User),
	}
	if rec.ReturnDate != nil {
		s := formatTime(*rec.ReturnDate)
		resp.ReturnDate = &s
	}
	return resp
}

// NewRecordList 列表响应
func NewRecordList(details []*apploan.RecordDetail) []*RecordResponse {
	items := make([]*RecordResponse, 0, len(details))
	for _, d := range details {
		items = append(items, NewRecordResponse(d))
	}
	return items
}
