package redis

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 需要本地Redis:
// LIBRARY_TEST_REDIS_ADDR=127.0.0.1:6379 go test ./internal/infrastructure/persistence/redis/...
func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()

	addr := os.Getenv("LIBRARY_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("未设置LIBRARY_TEST_REDIS_ADDR,跳过Redis测试")
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		_ = client.Close()
	})
	return client
}

func TestSummaryKey(t *testing.T) {
	assert.Equal(t, "library:summary:42", summaryKey(42))
}

func TestSummaryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewSummaryCache(newTestClient(t), time.Minute)

	_, ok, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, 1, "A story about a whale."))

	got, ok, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A story about a whale.", got)

	require.NoError(t, cache.Delete(ctx, 1))
	_, ok, err = cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
