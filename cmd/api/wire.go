//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/application/stats"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/assistant"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/router"
)

// infrastructureSet 数据库、缓存、模型客户端、事件发布
var infrastructureSet = wire.NewSet(
	provideDB,
	provideSummaryCache,
	provideGenerator,
	provideEventPublisher,
	sqlstore.NewPinger,
)

// repositorySet 仓储与事务管理器
var repositorySet = wire.NewSet(
	sqlstore.NewBookRepository,
	sqlstore.NewUserRepository,
	sqlstore.NewLoanRepository,
	sqlstore.NewTxManager,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	assistant.NewAdapter,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appbook.NewListBooksUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewBookSummaryUseCase,
	appbook.NewSearchBooksUseCase,
	appbook.NewRecommendBooksUseCase,
	appuser.NewListUsersUseCase,
	appuser.NewCreateUserUseCase,
	loan.NewBorrowUseCase,
	loan.NewReturnUseCase,
	loan.NewListRecordsUseCase,
	stats.NewGetStatsUseCase,
	provideHealthCheck,
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewDiscoveryHandler,
	handler.NewUserHandler,
	handler.NewLoanHandler,
	handler.NewSystemHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 组装整个应用
// cleanup按创建的逆序关闭事件发布者、Redis与数据库连接
func InitializeApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
