package book

import (
	"context"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/xiebiao/library/internal/domain/assistant"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/metrics"
)

// BookSummaryUseCase 图书摘要
// 摘要生成慢且按次计费:
//   - 成功的结果写入缓存,失败文本不缓存
//   - 同一本书的并发请求合并为一次模型调用
type BookSummaryUseCase struct {
	bookRepo book.Repository
	adapter  *assistant.Adapter
	cache    SummaryCache
	group    singleflight.Group
	logger   *zap.Logger
}

// NewBookSummaryUseCase 创建摘要用例
func NewBookSummaryUseCase(
	bookRepo book.Repository,
	adapter *assistant.Adapter,
	cache SummaryCache,
	logger *zap.Logger,
) *BookSummaryUseCase {
	return &BookSummaryUseCase{
		bookRepo: bookRepo,
		adapter:  adapter,
		cache:    cache,
		logger:   logger,
	}
}

// Execute 返回摘要文本,图书不存在返回ErrBookNotFound
func (uc *BookSummaryUseCase) Execute(ctx context.Context, id uint) (string, error) {
	b, err := uc.bookRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	summary, ok, err := uc.cache.Get(ctx, id)
	switch {
	case err != nil:
		metrics.RecordSummaryCache("error")
		uc.logger.Warn("读取摘要缓存失败", zap.Uint("book_id", id), zap.Error(err))
	case ok:
		metrics.RecordSummaryCache("hit")
		return summary, nil
	default:
		metrics.RecordSummaryCache("miss")
	}

	// 合并后的调用结果属于所有等待者,不能随第一个请求的取消而中断
	// 超时由模型客户端自己控制
	shared := context.WithoutCancel(ctx)
	v, _, _ := uc.group.Do(strconv.FormatUint(uint64(id), 10), func() (any, error) {
		text, err := uc.adapter.TrySummarize(shared, assistant.SummaryInputOf(b))
		if err != nil {
			return assistant.SummaryFallback(err), nil
		}
		if err := uc.cache.Set(shared, id, text); err != nil {
			uc.logger.Warn("写入摘要缓存失败", zap.Uint("book_id", id), zap.Error(err))
		}
		return text, nil
	})
	return v.(string), nil
}
