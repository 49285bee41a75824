// Package router 组装gin引擎:中间件、/api路由、/metrics与Swagger文档
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/library/docs" // Swagger文档
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
)

// SlowRequestThreshold 慢请求阈值
// 调用大模型的接口(摘要、搜索、推荐)通常需要数秒,阈值按此放宽
const SlowRequestThreshold = 10 * time.Second

// Handlers 全部HTTP处理器
type Handlers struct {
	Book      *handler.BookHandler
	Discovery *handler.DiscoveryHandler
	User      *handler.UserHandler
	Loan      *handler.LoanHandler
	System    *handler.SystemHandler
}

// New 创建并配置gin引擎
// 中间件顺序:Recovery → 请求日志 → 链路追踪 → 指标 → CORS
func New(cfg *config.Config, logger *zap.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(logger),
		middleware.Logger(logger, SlowRequestThreshold),
		middleware.Tracing(),
	)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	r.Use(middleware.CORS(cfg.CORS))

	// Swagger文档: http://localhost:5000/swagger/index.html
	if cfg.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		books := api.Group("/books")
		{
			books.GET("", h.Book.ListBooks)
			books.POST("", h.Book.CreateBook)
			books.PUT("/:id", h.Book.UpdateBook)
			books.DELETE("/:id", h.Book.DeleteBook)
			books.GET("/:id/summary", h.Book.Summary)
		}
		// 旧前端使用的单数路径
		api.GET("/book/:id/summary", h.Book.Summary)

		api.POST("/search", h.Discovery.Search)
		api.POST("/recommendations", h.Discovery.Recommend)

		users := api.Group("/users")
		{
			users.GET("", h.User.ListUsers)
			users.POST("", h.User.CreateUser)
		}

		api.POST("/borrow", h.Loan.Borrow)
		api.POST("/return", h.Loan.Return)
		api.GET("/borrow-records", h.Loan.ListRecords)

		api.GET("/stats", h.System.Stats)
		api.GET("/health", h.System.Health)
	}

	return r
}
