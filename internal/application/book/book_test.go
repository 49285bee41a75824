package book

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/assistant"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/sqlstore"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// memoryCache 内存版摘要缓存
type memoryCache struct {
	mu      sync.Mutex
	data    map[uint]string
	deleted []uint
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[uint]string)}
}

func (c *memoryCache) Get(_ context.Context, id uint) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.data[id]
	return s, ok, nil
}

func (c *memoryCache) Set(_ context.Context, id uint, s string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[id] = s
	return nil
}

func (c *memoryCache) Delete(_ context.Context, id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, id)
	c.deleted = append(c.deleted, id)
	return nil
}

type testEnv struct {
	books book.Repository
	tx    *sqlstore.TxManager
	cache *memoryCache
	calls atomic.Int32
	reply func(prompt string) (string, error)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "book.db")},
	}
	db, err := sqlstore.NewDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &testEnv{
		books: sqlstore.NewBookRepository(db),
		tx:    sqlstore.NewTxManager(db),
		cache: newMemoryCache(),
		reply: func(string) (string, error) { return "", errors.New("unexpected model call") },
	}
}

func (e *testEnv) adapter() *assistant.Adapter {
	return assistant.NewAdapter(assistant.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		e.calls.Add(1)
		return e.reply(prompt)
	}), zap.NewNop())
}

func (e *testEnv) addBook(t *testing.T, title, isbn string) *book.Book {
	t.Helper()
	b := book.NewBook(title, "Author", isbn, "Fiction", nil, "desc")
	require.NoError(t, e.books.Create(context.Background(), b))
	return b
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := NewCreateBookUseCase(env.books, env.adapter(), zap.NewNop())

	t.Run("有描述时不调用模型", func(t *testing.T) {
		b, err := uc.Execute(ctx, CreateBookRequest{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719", Description: "Spice."})
		require.NoError(t, err)
		assert.Equal(t, "Spice.", b.Description)
		assert.True(t, b.Available)
		assert.Zero(t, env.calls.Load())
	})

	t.Run("没有描述时自动生成", func(t *testing.T) {
		env.reply = func(prompt string) (string, error) {
			assert.Contains(t, prompt, "Title: Emma")
			return "A comedy of manners.", nil
		}
		b, err := uc.Execute(ctx, CreateBookRequest{Title: "Emma", Author: "Jane Austen", ISBN: "9780141439587"})
		require.NoError(t, err)
		assert.Equal(t, "A comedy of manners.", b.Description)
	})

	t.Run("模型失败时错误文本成为描述", func(t *testing.T) {
		env.reply = func(string) (string, error) { return "", errors.New("quota exceeded") }
		b, err := uc.Execute(ctx, CreateBookRequest{Title: "Ulysses", Author: "James Joyce", ISBN: "9780199535675"})
		require.NoError(t, err)
		assert.Equal(t, "Error generating summary: quota exceeded", b.Description)
	})

	t.Run("ISBN重复返回Validation错误", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateBookRequest{Title: "Dune 2", Author: "X", ISBN: "9780441172719", Description: "d"})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetAppError(err).Code)
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := NewUpdateBookUseCase(env.books, env.tx, env.cache, zap.NewNop())
	b := env.addBook(t, "1984", "9780451524935")
	require.NoError(t, env.cache.Set(ctx, b.ID, "old summary"))

	t.Run("只修改出现的字段并清除摘要缓存", func(t *testing.T) {
		title := "Nineteen Eighty-Four"
		year := 1949
		got, err := uc.Execute(ctx, UpdateBookRequest{ID: b.ID, Patch: book.Patch{Title: &title, PublicationYear: &year}})
		require.NoError(t, err)
		assert.Equal(t, title, got.Title)
		assert.Equal(t, "Author", got.Author)
		require.NotNil(t, got.PublicationYear)
		assert.Equal(t, 1949, *got.PublicationYear)

		_, ok, _ := env.cache.Get(ctx, b.ID)
		assert.False(t, ok)
	})

	t.Run("available与借阅状态不一致时拒绝", func(t *testing.T) {
		no := false
		title := "changed"
		_, err := uc.Execute(ctx, UpdateBookRequest{ID: b.ID, Patch: book.Patch{Title: &title, Available: &no}})
		assert.ErrorIs(t, err, book.ErrAvailabilityConflict)

		got, err := env.books.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.True(t, got.Available)
		assert.Equal(t, "Nineteen Eighty-Four", got.Title, "整个更新被拒绝")
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateBookRequest{ID: 999})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := NewDeleteBookUseCase(env.books, env.cache, zap.NewNop())
	b := env.addBook(t, "Emma", "9780141439587")

	require.NoError(t, uc.Execute(ctx, b.ID))
	assert.Equal(t, []uint{b.ID}, env.cache.deleted)
	assert.ErrorIs(t, uc.Execute(ctx, b.ID), book.ErrBookNotFound)
}

func TestSearchBooks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := NewSearchBooksUseCase(env.books, env.adapter())
	b1 := env.addBook(t, "Dune", "9780441172719")
	b2 := env.addBook(t, "Emma", "9780141439587")

	t.Run("空查询返回全部图书且不调用模型", func(t *testing.T) {
		got, err := uc.Execute(ctx, "")
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Zero(t, env.calls.Load())
	})

	t.Run("按模型顺序返回并跳过不存在的ID", func(t *testing.T) {
		env.reply = func(string) (string, error) {
			return "```json\n{\"book_ids\": [" + itoa(b2.ID) + ", 99, " + itoa(b1.ID) + "]}\n```", nil
		}
		got, err := uc.Execute(ctx, "classics")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, b2.ID, got[0].ID)
		assert.Equal(t, b1.ID, got[1].ID)
	})

	t.Run("模型失败返回空数组", func(t *testing.T) {
		env.reply = func(string) (string, error) { return "", errors.New("timeout") }
		got, err := uc.Execute(ctx, "classics")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestRecommendBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("没有可借图书时不调用模型", func(t *testing.T) {
		env := newTestEnv(t)
		got, err := NewRecommendBooksUseCase(env.books, env.adapter()).Execute(ctx, "sci-fi")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Zero(t, env.calls.Load())
	})

	t.Run("合并图书并丢弃未知ID", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.addBook(t, "Dune", "9780441172719")
		env.reply = func(string) (string, error) {
			return `{"recommendations":[{"book_id":42,"reason":"x","rating":9},{"book_id":` + itoa(b.ID) + `,"reason":"desert","rating":8}]}`, nil
		}

		got, err := NewRecommendBooksUseCase(env.books, env.adapter()).Execute(ctx, "sci-fi")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "desert", got[0].Reason)
		assert.Equal(t, 8, got[0].Rating)
		assert.Equal(t, "Dune", got[0].Book.Title)
	})

	t.Run("模型失败返回AdapterFailure", func(t *testing.T) {
		env := newTestEnv(t)
		env.addBook(t, "Dune", "9780441172719")
		env.reply = func(string) (string, error) { return "not json", nil }

		_, err := NewRecommendBooksUseCase(env.books, env.adapter()).Execute(ctx, "sci-fi")
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		assert.Equal(t, apperrors.ErrCodeAdapterFailure, appErr.Code)
		assert.True(t, strings.HasPrefix(appErr.Message, "Failed to parse AI response: "))
	})
}

func TestBookSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("成功结果写入缓存,第二次命中缓存", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.addBook(t, "Dune", "9780441172719")
		env.reply = func(string) (string, error) { return "Epic.", nil }
		uc := NewBookSummaryUseCase(env.books, env.adapter(), env.cache, zap.NewNop())

		for i := 0; i < 2; i++ {
			got, err := uc.Execute(ctx, b.ID)
			require.NoError(t, err)
			assert.Equal(t, "Epic.", got)
		}
		assert.EqualValues(t, 1, env.calls.Load())
	})

	t.Run("失败文本不缓存", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.addBook(t, "Dune", "9780441172719")
		env.reply = func(string) (string, error) { return "", errors.New("quota exceeded") }
		uc := NewBookSummaryUseCase(env.books, env.adapter(), env.cache, zap.NewNop())

		got, err := uc.Execute(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Error generating summary: quota exceeded", got)

		_, ok, _ := env.cache.Get(ctx, b.ID)
		assert.False(t, ok)
	})

	t.Run("并发请求合并为一次模型调用", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.addBook(t, "Dune", "9780441172719")
		release := make(chan struct{})
		env.reply = func(string) (string, error) {
			<-release
			return "Epic.", nil
		}
		uc := NewBookSummaryUseCase(env.books, env.adapter(), NoSummaryCache, zap.NewNop())

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := uc.Execute(ctx, b.ID)
				assert.NoError(t, err)
				assert.Equal(t, "Epic.", got)
			}()
		}
		// 等第一个请求进入模型调用
		require.Eventually(t, func() bool { return env.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.EqualValues(t, 1, env.calls.Load())
	})

	t.Run("首个请求取消不影响合并等待的请求", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.addBook(t, "Dune", "9780441172719")
		release := make(chan struct{})
		var calls atomic.Int32
		adapter := assistant.NewAdapter(assistant.GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
			calls.Add(1)
			select {
			case <-release:
				return "Epic.", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}), zap.NewNop())
		uc := NewBookSummaryUseCase(env.books, adapter, env.cache, zap.NewNop())

		leaderCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		leaderDone := make(chan string, 1)
		go func() {
			got, _ := uc.Execute(leaderCtx, b.ID)
			leaderDone <- got
		}()
		require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

		followerDone := make(chan string, 1)
		go func() {
			got, err := uc.Execute(ctx, b.ID)
			assert.NoError(t, err)
			followerDone <- got
		}()
		// 等第二个请求加入同一次调用后再取消第一个请求
		time.Sleep(50 * time.Millisecond)
		cancel()
		time.Sleep(20 * time.Millisecond)
		close(release)

		assert.Equal(t, "Epic.", <-followerDone)
		assert.Equal(t, "Epic.", <-leaderDone)
		assert.EqualValues(t, 1, calls.Load())

		cached, ok, _ := env.cache.Get(ctx, b.ID)
		assert.True(t, ok)
		assert.Equal(t, "Epic.", cached)
	})

	t.Run("图书不存在", func(t *testing.T) {
		env := newTestEnv(t)
		uc := NewBookSummaryUseCase(env.books, env.adapter(), env.cache, zap.NewNop())
		_, err := uc.Execute(ctx, 999)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
