package loan

import (
	"time"
)

// Status 借阅状态(由Returned派生,不单独存储)
type Status int

const (
	StatusOpen     Status = 1 // 借阅中
	StatusReturned Status = 2 // 已归还
)

// String 实现Stringer接口(方便日志输出)
func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusReturned:
		return "returned"
	default:
		return "unknown"
	}
}

// Record 借阅记录(聚合根)
// 教学要点:
// 1. 只保存BookID/UserID,不直接持有Book/User对象(避免跨聚合引用)
// 2. 不变量: ReturnDate != nil 当且仅当 Returned == true
// 3. 只能由借阅创建、由归还修改,没有删除操作
type Record struct {
	ID         uint
	BookID     uint
	UserID     uint
	BorrowDate time.Time
	ReturnDate *time.Time
	Returned   bool
}

// NewRecord 创建借阅记录(工厂方法)
// 初始状态为借阅中
func NewRecord(bookID, userID uint, now time.Time) *Record {
	return &Record{
		BookID:     bookID,
		UserID:     userID,
		BorrowDate: now,
	}
}

// Status 当前状态
func (r *Record) Status() Status {
	if r.Returned {
		return StatusReturned
	}
	return StatusOpen
}

// MarkReturned 归还(状态转换 Open → Returned)
// 已归还的记录再次归还返回ErrAlreadyReturned,且不修改ReturnDate
func (r *Record) MarkReturned(now time.Time) error {
	if r.Returned {
		return ErrAlreadyReturned
	}
	r.Returned = true
	r.ReturnDate = &now
	return nil
}
