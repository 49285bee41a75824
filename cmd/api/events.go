package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/pkg/mq"
)

var eventsQueue string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "订阅RabbitMQ中的借阅事件(loan.*)并写入日志",
	Long: `订阅借阅/归还事件，用于排查事件是否按预期发布。

不指定--queue时使用临时队列，进程退出后队列自动删除；
指定--queue时使用持久化队列，离线期间的事件会在下次启动时补收。`,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().StringVarP(&eventsQueue, "queue", "q", "", "持久化队列名(默认临时队列)")
}

func runEvents(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.MQ.Enabled {
		return fmt.Errorf("未启用消息队列(mq.enabled=false)")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType,
		eventsQueue, []string{"loan.*"}, logger)
	if err != nil {
		return err
	}
	defer func() { _ = consumer.Close() }()

	return consumer.Consume(ctx, logLoanEvent(logger))
}

// logLoanEvent 把事件解析后写日志;无法解析的消息直接确认丢弃,避免反复重投
func logLoanEvent(logger *zap.Logger) mq.Handler {
	return func(_ context.Context, routingKey string, body []byte) error {
		var evt loan.Event
		if err := json.Unmarshal(body, &evt); err != nil {
			logger.Warn("无法解析的事件", zap.String("routing_key", routingKey), zap.ByteString("body", body))
			return nil
		}
		logger.Info("借阅事件",
			zap.String("type", evt.Type),
			zap.Uint("record_id", evt.RecordID),
			zap.Uint("book_id", evt.BookID),
			zap.Uint("user_id", evt.UserID),
			zap.Time("occurred_at", evt.OccurredAt),
		)
		return nil
	}
}
