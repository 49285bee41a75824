package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/application/health"
	"github.com/xiebiao/library/internal/domain/assistant"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/infrastructure/ai"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/event"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/infrastructure/persistence/sqlstore"
)

// App serve命令需要的对象
type App struct {
	Engine *gin.Engine
	DB     *gorm.DB
}

// provideDB 创建数据库连接,cleanup关闭连接池
func provideDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := sqlstore.NewDB(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideSummaryCache 启用Redis时使用Redis缓存摘要
// Redis连不上时降级为不缓存,摘要接口仍然可用
func provideSummaryCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (appbook.SummaryCache, func()) {
	if !cfg.Redis.Enabled {
		return appbook.NoSummaryCache, func() {}
	}

	client, err := redis.NewClient(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis不可用，摘要不缓存", zap.Error(err))
		return appbook.NoSummaryCache, func() {}
	}

	return redis.NewSummaryCache(client, cfg.Redis.SummaryTTL), func() { _ = client.Close() }
}

// provideGenerator 外部模型客户端
func provideGenerator(cfg *config.Config, logger *zap.Logger) assistant.Generator {
	return ai.NewGenerator(cfg.AI, logger)
}

// provideEventPublisher 借阅事件发布
// 事件只是提交后的通知,RabbitMQ连不上时降级为不发布
func provideEventPublisher(cfg *config.Config, logger *zap.Logger) (loan.EventPublisher, func()) {
	pub, cleanup, err := event.NewPublisher(cfg.MQ, logger)
	if err != nil {
		logger.Warn("RabbitMQ不可用，借阅事件不发布", zap.Error(err))
		return event.Noop{}, func() {}
	}
	return pub, cleanup
}

// provideHealthCheck 健康检查,ai.health_probe控制是否实际调用模型
func provideHealthCheck(pinger *sqlstore.Pinger, adapter *assistant.Adapter, cfg *config.Config) *health.CheckUseCase {
	return health.NewCheckUseCase(pinger, adapter, cfg.AI.HealthProbe)
}
