package book

import (
	"context"
)

// SummaryCache 图书摘要缓存(cache-aside)
// 由infrastructure/persistence/redis实现;未启用Redis时使用NoSummaryCache
type SummaryCache interface {
	Get(ctx context.Context, bookID uint) (summary string, ok bool, err error)
	Set(ctx context.Context, bookID uint, summary string) error
	Delete(ctx context.Context, bookID uint) error
}

// NoSummaryCache 不缓存
var NoSummaryCache SummaryCache = noCache{}

type noCache struct{}

func (noCache) Get(context.Context, uint) (string, bool, error) { return "", false, nil }
func (noCache) Set(context.Context, uint, string) error         { return nil }
func (noCache) Delete(context.Context, uint) error              { return nil }
