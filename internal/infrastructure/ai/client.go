// Package ai 大模型客户端
//
// 通过OpenAI兼容的Chat Completions接口调用模型（OpenAI或Gemini的兼容地址），
// 对外只暴露assistant.Generator。每次调用依次经过：
//
//	限流（x/time/rate）→ 熔断（pkg/circuitbreaker）→ 超时 → CreateChatCompletion
//
// 单次调用，不重试。
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xiebiao/library/internal/domain/assistant"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

const breakerName = "llm"

var (
	// ErrNotConfigured 未配置API Key
	ErrNotConfigured = errors.New("AI service is not configured")
	// ErrRateLimited 超过本地限流
	ErrRateLimited = errors.New("AI service rate limit exceeded")
	// ErrEmptyResponse 模型没有返回任何候选
	ErrEmptyResponse = errors.New("AI service returned no choices")
)

// chatCompleter go-openai客户端中用到的部分，测试时替换
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client 带保护的大模型客户端
type Client struct {
	api     chatCompleter
	model   string
	timeout time.Duration
	limiter *rate.Limiter // nil表示不限流
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

var _ assistant.Generator = (*Client)(nil)

// NewGenerator 按配置创建模型客户端
// 没有API Key时返回一个总是失败的Generator：摘要和搜索照常降级，推荐返回500
func NewGenerator(cfg config.AIConfig, logger *zap.Logger) assistant.Generator {
	if cfg.APIKey == "" {
		logger.Warn("未配置ai.api_key，AI功能将降级")
		return Unavailable{}
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return newClient(openai.NewClientWithConfig(oc), cfg, logger)
}

func newClient(api chatCompleter, cfg config.AIConfig, logger *zap.Logger) *Client {
	c := &Client{
		api:     api,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}

	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}

	failures := cfg.Breaker.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}
	c.breaker = circuitbreaker.New(breakerName, circuitbreaker.Config{
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// 调用方取消（客户端断开）不算模型故障
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetBreakerState(name, int(to))
		},
	})
	metrics.SetBreakerState(breakerName, int(circuitbreaker.StateClosed))

	return c
}

// Generate 发送单条user消息，返回第一个候选的文本
func (c *Client) Generate(ctx context.Context, prompt string) (text string, err error) {
	ctx, span := tracing.StartSpan(ctx, "ai", "ai.Generate",
		attribute.String("ai.model", c.model),
		attribute.Int("ai.prompt_length", len(prompt)),
	)
	defer func() { tracing.EndSpan(span, err) }()

	if c.limiter != nil && !c.limiter.Allow() {
		metrics.RecordAIRequest(ErrRateLimited, true, 0)
		return "", ErrRateLimited
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	err = c.breaker.Execute(ctx, func(ctx context.Context) error {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return ErrEmptyResponse
		}
		text = resp.Choices[0].Message.Content
		return nil
	})

	rejected := errors.Is(err, circuitbreaker.ErrOpenState)
	metrics.RecordAIRequest(err, rejected, time.Since(start))

	if err != nil {
		c.logger.Warn("调用大模型失败",
			zap.String("model", c.model),
			zap.Bool("rejected", rejected),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return "", fmt.Errorf("model request failed: %w", err)
	}

	span.SetAttributes(attribute.Int("ai.response_length", len(text)))
	return text, nil
}

// BreakerState 当前熔断器状态
func (c *Client) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}

// Unavailable 未配置模型时使用
type Unavailable struct{}

// Generate 总是返回ErrNotConfigured
func (Unavailable) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
