package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// SummaryCache 图书AI摘要缓存
// 设计说明：
// 1. Cache-Aside：先查缓存，未命中再调用模型，成功后回填
// 2. 只缓存成功生成的摘要，失败文本不入缓存
// 3. 图书更新/删除时删除缓存（而不是更新缓存）
// 4. Key设计：library:summary:{book_id}
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache 创建摘要缓存
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

func summaryKey(bookID uint) string {
	return fmt.Sprintf("library:summary:%d", bookID)
}

// Get 获取摘要，未命中返回("", false, nil)
func (c *SummaryCache) Get(ctx context.Context, bookID uint) (string, bool, error) {
	val, err := c.client.Get(ctx, summaryKey(bookID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, apperrors.Wrap(err, "获取摘要缓存失败")
	}
	return val, true, nil
}

// Set 写入摘要
func (c *SummaryCache) Set(ctx context.Context, bookID uint, summary string) error {
	if err := c.client.Set(ctx, summaryKey(bookID), summary, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入摘要缓存失败")
	}
	return nil
}

// Delete 删除摘要
func (c *SummaryCache) Delete(ctx context.Context, bookID uint) error {
	if err := c.client.Del(ctx, summaryKey(bookID)).Err(); err != nil {
		return apperrors.Wrap(err, "删除摘要缓存失败")
	}
	return nil
}
