package health

import (
	"context"
	"time"
)

// 健康状态取值
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	DatabaseConnected = "connected"

	AIWorking = "working"
	AIError   = "error"
	AISkipped = "skipped"
)

// Pinger 数据库连通性检查
type Pinger interface {
	Ping(ctx context.Context) error
}

// Prober 模型连通性检查(assistant.Adapter满足该接口)
type Prober interface {
	Probe(ctx context.Context) (bool, error)
}

// Report 健康检查结果
type Report struct {
	Status    string
	Database  string
	AIService string
	Error     string
	Timestamp time.Time
}

// Healthy 是否健康
func (r *Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// CheckUseCase 健康检查
// 数据库不通或模型调用报错都视为不健康;
// 模型能调通但回复里没有"working"时仍然健康,ai_service标记为error。
// 每次检查都会真实调用一次模型,可用ai.health_probe=false关闭
type CheckUseCase struct {
	db    Pinger
	ai    Prober
	probe bool
	now   func() time.Time
}

// NewCheckUseCase 创建健康检查用例
func NewCheckUseCase(db Pinger, ai Prober, probe bool) *CheckUseCase {
	return &CheckUseCase{
		db:    db,
		ai:    ai,
		probe: probe,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Execute 执行检查
func (uc *CheckUseCase) Execute(ctx context.Context) *Report {
	report := &Report{Timestamp: uc.now()}

	if err := uc.db.Ping(ctx); err != nil {
		return unhealthy(report, err)
	}
	report.Database = DatabaseConnected

	if !uc.probe {
		report.AIService = AISkipped
		report.Status = StatusHealthy
		return report
	}

	working, err := uc.ai.Probe(ctx)
	if err != nil {
		return unhealthy(report, err)
	}

	report.AIService = AIError
	if working {
		report.AIService = AIWorking
	}
	report.Status = StatusHealthy
	return report
}

func unhealthy(r *Report, err error) *Report {
	r.Status = StatusUnhealthy
	r.Error = err.Error()
	return r
}
