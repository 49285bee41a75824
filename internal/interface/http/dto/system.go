package dto

import (
	"github.com/xiebiao/library/internal/application/health"
	"github.com/xiebiao/library/internal/application/stats"
)

// StatsResponse 统计信息
type StatsResponse struct {
	TotalBooks     int64 `json:"total_books" example:"5"`
	AvailableBooks int64 `json:"available_books" example:"4"`
	BorrowedBooks  int64 `json:"borrowed_books" example:"1"`
	TotalUsers     int64 `json:"total_users" example:"1"`
	ActiveBorrows  int64 `json:"active_borrows" example:"1"`
}

// NewStatsResponse 统计结果 → HTTP响应
func NewStatsResponse(s *stats.Stats) *StatsResponse {
	return &StatsResponse{
		TotalBooks:     s.TotalBooks,
		AvailableBooks: s.AvailableBooks,
		BorrowedBooks:  s.BorrowedBooks,
		TotalUsers:     s.TotalUsers,
		ActiveBorrows:  s.ActiveBorrows,
	}
}

// HealthResponse 健康检查
// 健康时包含database/ai_service,不健康时包含error
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Database  string `json:"database,omitempty" example:"connected"`
	AIService string `json:"ai_service,omitempty" example:"working"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp" example:"2025-01-15T10:30:00Z"`
}

// NewHealthResponse 健康检查结果 → HTTP响应
func NewHealthResponse(r *health.Report) *HealthResponse {
	return &HealthResponse{
		Status:    r.Status,
		Database:  r.Database,
		AIService: r.AIService,
		Error:     r.Error,
		Timestamp: formatTime(r.Timestamp),
	}
}
