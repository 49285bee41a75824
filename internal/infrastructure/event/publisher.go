// Package event 借阅事件发布
package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// messagePublisher mq.Publisher中用到的部分
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// MQPublisher 把借阅事件发布到RabbitMQ，事件类型即routing key
type MQPublisher struct {
	pub messagePublisher
}

// NewMQPublisher 创建发布者
func NewMQPublisher(pub messagePublisher) *MQPublisher {
	return &MQPublisher{pub: pub}
}

// Publish 实现loan.EventPublisher
func (p *MQPublisher) Publish(ctx context.Context, evt loan.Event) error {
	err := p.pub.Publish(ctx, evt.Type, evt)
	metrics.RecordPublish(evt.Type, err)
	return err
}

// Noop 未启用消息队列时使用
type Noop struct{}

// Publish 什么都不做
func (Noop) Publish(context.Context, loan.Event) error { return nil }

// NewPublisher 按配置创建事件发布者
// 未启用时返回Noop；启用但连不上RabbitMQ时返回错误，由调用方决定是否继续启动
// cleanup负责关闭连接
func NewPublisher(cfg config.MQConfig, logger *zap.Logger) (loan.EventPublisher, func(), error) {
	if !cfg.Enabled {
		return Noop{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.URL, cfg.Exchange, cfg.ExchangeType, logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := pub.Close(); err != nil {
			logger.Warn("关闭消息发布者失败", zap.Error(err))
		}
	}
	return NewMQPublisher(pub), cleanup, nil
}
