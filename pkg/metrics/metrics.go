// Package metrics 基于Prometheus的指标收集
//
// 指标分四组：
//   - HTTP：请求数、耗时、处理中请求数
//   - 借阅：借出/归还次数与耗时
//   - 大模型：调用次数（成功/失败/熔断拒绝）、耗时、熔断器状态
//   - 基础设施：事件发布结果、摘要缓存命中
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds）。
//
// 使用：
//
//	metrics.Init()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//	metrics.RecordLoan("borrow", err, time.Since(start))
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数，标签：method、path（路由模板）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	// 包含大模型调用的接口可能持续数十秒，桶上限放到60s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// LoanOperationsTotal 借阅操作次数，标签：operation（borrow/return）、result（success/failure）
	LoanOperationsTotal *prometheus.CounterVec

	// LoanOperationDuration 借阅事务耗时
	LoanOperationDuration *prometheus.HistogramVec

	// AIRequestsTotal 大模型调用次数，标签：result（success/failure/rejected）
	AIRequestsTotal *prometheus.CounterVec

	// AIRequestDuration 大模型调用耗时
	AIRequestDuration prometheus.Histogram

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// MessagesPublishedTotal 事件发布次数，标签：routing_key、result
	MessagesPublishedTotal *prometheus.CounterVec

	// SummaryCacheTotal 摘要缓存查询次数，标签：result（hit/miss/error）
	SummaryCacheTotal *prometheus.CounterVec
)

// Init 注册全部指标（可重复调用，只注册一次）
func Init() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	LoanOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_loan_operations_total",
			Help: "借阅操作次数",
		},
		[]string{"operation", "result"},
	)

	LoanOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "library_loan_operation_duration_seconds",
			Help:    "借阅事务耗时（秒）",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	AIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_ai_requests_total",
			Help: "大模型调用次数",
		},
		[]string{"result"},
	)

	AIRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "library_ai_request_duration_seconds",
			Help:    "大模型调用耗时（秒）",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 40, 60},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "事件发布次数",
		},
		[]string{"routing_key", "result"},
	)

	SummaryCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_summary_cache_total",
			Help: "摘要缓存查询次数",
		},
		[]string{"result"},
	)
}

// =========================================
// 记录辅助函数
// =========================================

func resultOf(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// ObserveHTTP 记录一次HTTP请求
func ObserveHTTP(method, path, status string, d time.Duration) {
	Init()
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordLoan 记录一次借阅操作（operation: borrow/return）
func RecordLoan(operation string, err error, d time.Duration) {
	Init()
	LoanOperationsTotal.WithLabelValues(operation, resultOf(err)).Inc()
	LoanOperationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordAIRequest 记录一次大模型调用
// rejected表示被熔断器或限流拒绝，没有真正发出请求
func RecordAIRequest(err error, rejected bool, d time.Duration) {
	Init()
	result := resultOf(err)
	if rejected {
		result = "rejected"
	} else {
		AIRequestDuration.Observe(d.Seconds())
	}
	AIRequestsTotal.WithLabelValues(result).Inc()
}

// SetBreakerState 更新熔断器状态
func SetBreakerState(name string, state int) {
	Init()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordPublish 记录一次事件发布
func RecordPublish(routingKey string, err error) {
	Init()
	MessagesPublishedTotal.WithLabelValues(routingKey, resultOf(err)).Inc()
}

// RecordSummaryCache 记录摘要缓存查询结果（hit/miss/error）
func RecordSummaryCache(result string) {
	Init()
	SummaryCacheTotal.WithLabelValues(result).Inc()
}
