package loan

import (
	"context"
	"time"
)

// 借阅事件类型(同时作为消息的routing key)
const (
	EventBorrowed = "loan.borrowed"
	EventReturned = "loan.returned"
)

// Event 借阅领域事件
// 在事务提交之后发布,发布失败不影响借阅结果
type Event struct {
	Type       string    `json:"type"`
	RecordID   uint      `json:"record_id"`
	BookID     uint      `json:"book_id"`
	UserID     uint      `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent 由借阅记录构造事件
func NewEvent(eventType string, r *Record, at time.Time) Event {
	return Event{
		Type:       eventType,
		RecordID:   r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		OccurredAt: at,
	}
}

// EventPublisher 事件发布接口,由infrastructure/event实现
type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}
