package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/application/health"
	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/application/stats"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/assistant"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/event"
	"github.com/xiebiao/library/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
	"github.com/xiebiao/library/pkg/validator"
)

// testServer 基于SQLite临时库的完整HTTP栈,模型回复由reply决定
type testServer struct {
	engine *gin.Engine

	mu    sync.Mutex
	reply func(prompt string) (string, error)
}

func (s *testServer) setReply(fn func(prompt string) (string, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reply = fn
}

func (s *testServer) generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	fn := s.reply
	s.mu.Unlock()
	return fn(prompt)
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Register()

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "api.db")},
		CORS: config.CORSConfig{
			Enabled:      true,
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Content-Type"},
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	logger := zap.NewNop()
	db, err := sqlstore.NewDB(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	s := &testServer{
		reply: func(string) (string, error) { return "", errors.New("unexpected model call") },
	}

	books := sqlstore.NewBookRepository(db)
	users := sqlstore.NewUserRepository(db)
	loans := sqlstore.NewLoanRepository(db)
	tx := sqlstore.NewTxManager(db)
	adapter := assistant.NewAdapter(assistant.GeneratorFunc(s.generate), logger)
	cache := appbook.NoSummaryCache
	events := event.Noop{}

	s.engine = New(cfg, logger, Handlers{
		Book: handler.NewBookHandler(
			appbook.NewListBooksUseCase(books),
			appbook.NewCreateBookUseCase(books, adapter, logger),
			appbook.NewUpdateBookUseCase(books, tx, cache, logger),
			appbook.NewDeleteBookUseCase(books, cache, logger),
			appbook.NewBookSummaryUseCase(books, adapter, cache, logger),
		),
		Discovery: handler.NewDiscoveryHandler(
			appbook.NewSearchBooksUseCase(books, adapter),
			appbook.NewRecommendBooksUseCase(books, adapter),
		),
		User: handler.NewUserHandler(
			appuser.NewListUsersUseCase(users),
			appuser.NewCreateUserUseCase(users, logger),
		),
		Loan: handler.NewLoanHandler(
			apploan.NewBorrowUseCase(books, users, loans, tx, events, logger),
			apploan.NewReturnUseCase(books, users, loans, tx, events, logger),
			apploan.NewListRecordsUseCase(books, users, loans),
		),
		System: handler.NewSystemHandler(
			stats.NewGetStatsUseCase(books, users, loans, tx),
			health.NewCheckUseCase(sqlstore.NewPinger(db), adapter, true),
		),
	})
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body=%s", w.Body.String())
	return v
}

func (s *testServer) createBook(t *testing.T, title, isbn string) dto.BookResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/books", map[string]any{
		"title": title, "author": "Author", "isbn": isbn, "description": "desc",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.BookResponse](t, w)
}

func (s *testServer) createUser(t *testing.T, email string) dto.UserResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/users", map[string]any{"name": "Reader", "email": email})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.UserResponse](t, w)
}

func TestBooksAPI(t *testing.T) {
	s := newTestServer(t)

	t.Run("新增图书", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/books", map[string]any{
			"title": "1984", "author": "George Orwell", "isbn": "978-0-452-28423-4",
			"genre": "Dystopian Fiction", "publication_year": 1949, "description": "Big Brother.",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		b := decode[dto.BookResponse](t, w)
		assert.NotZero(t, b.ID)
		assert.Equal(t, "1984", b.Title)
		assert.True(t, b.Available)
		require.NotNil(t, b.PublicationYear)
		assert.Equal(t, 1949, *b.PublicationYear)
		assert.NotEmpty(t, b.CreatedAt)
	})

	t.Run("缺少描述时自动生成", func(t *testing.T) {
		s.setReply(func(prompt string) (string, error) {
			assert.Contains(t, prompt, "Title: Emma")
			return "A comedy of manners.", nil
		})
		w := s.do(t, http.MethodPost, "/api/books", map[string]any{
			"title": "Emma", "author": "Jane Austen", "isbn": "9780141439587",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "A comedy of manners.", decode[dto.BookResponse](t, w).Description)
	})

	t.Run("缺少必填字段返回400", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/books", map[string]any{"author": "X", "isbn": "bad isbn!"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		body := decode[response.ErrorBody](t, w)
		assert.Contains(t, body.Error, "title is required")
		assert.Contains(t, body.Error, "isbn must be a valid ISBN")
	})

	t.Run("ISBN重复返回400", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/books", map[string]any{
			"title": "Again", "author": "X", "isbn": "978-0-452-28423-4", "description": "d",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, decode[response.ErrorBody](t, w).Error)
	})

	t.Run("列表", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/books", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]dto.BookResponse](t, w), 2)
	})

	t.Run("部分更新", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/books/1", map[string]any{"genre": "Classic"})
		require.Equal(t, http.StatusOK, w.Code)

		b := decode[dto.BookResponse](t, w)
		assert.Equal(t, "Classic", b.Genre)
		assert.Equal(t, "1984", b.Title)
	})

	t.Run("publication_year为null时清空年份", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/books/1", map[string]any{"publication_year": 1949})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.NotNil(t, decode[dto.BookResponse](t, w).PublicationYear)

		w = s.do(t, http.MethodPut, "/api/books/1", map[string]any{"genre": "Classic"})
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, decode[dto.BookResponse](t, w).PublicationYear, "缺省字段不清空")

		w = s.do(t, http.MethodPut, "/api/books/1", map[string]any{"publication_year": nil})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Nil(t, decode[dto.BookResponse](t, w).PublicationYear)

		w = s.do(t, http.MethodGet, "/api/books", nil)
		books := decode[[]dto.BookResponse](t, w)
		require.NotEmpty(t, books)
		assert.Nil(t, books[0].PublicationYear)
	})

	t.Run("更新不存在的图书返回404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, "/api/books/999", map[string]any{"title": "x"}).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, "/api/books/abc", map[string]any{"title": "x"}).Code)
	})

	t.Run("available与借阅状态不一致返回400", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/books/1", map[string]any{"available": false})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("删除", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/books/2", nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/books/2", nil).Code)
	})
}

func TestLoanAPI(t *testing.T) {
	s := newTestServer(t)
	b := s.createBook(t, "Dune", "9780441172719")
	u := s.createUser(t, "reader@example.com")

	var recordID uint

	t.Run("借书", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/borrow", map[string]any{"book_id": b.ID, "user_id": u.ID})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		rec := decode[dto.RecordResponse](t, w)
		recordID = rec.ID
		assert.False(t, rec.Returned)
		assert.Nil(t, rec.ReturnDate)
		require.NotNil(t, rec.Book)
		assert.False(t, rec.Book.Available)
		require.NotNil(t, rec.User)
		assert.Equal(t, "reader@example.com", rec.User.Email)

		// return_date必须序列化为null
		assert.Contains(t, w.Body.String(), `"return_date":null`)
	})

	t.Run("重复借出返回400", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/borrow", map[string]any{"book_id": b.ID, "user_id": u.ID})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Book is not available", decode[response.ErrorBody](t, w).Error)
	})

	t.Run("图书或用户不存在返回404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound,
			s.do(t, http.MethodPost, "/api/borrow", map[string]any{"book_id": 999, "user_id": u.ID}).Code)
		assert.Equal(t, http.StatusNotFound,
			s.do(t, http.MethodPost, "/api/borrow", map[string]any{"book_id": b.ID, "user_id": 999}).Code)
	})

	t.Run("缺少或为0的ID按不存在处理", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/borrow", map[string]any{"book_id": b.ID})
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", decode[response.ErrorBody](t, w).Error)

		w = s.do(t, http.MethodPost, "/api/borrow", map[string]any{"book_id": 0, "user_id": u.ID})
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found", decode[response.ErrorBody](t, w).Error)

		w = s.do(t, http.MethodPost, "/api/return", map[string]any{})
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Borrow record not found", decode[response.ErrorBody](t, w).Error)
	})

	t.Run("请求体格式错误返回400", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/borrow", "not an object")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeBindError, decode[response.ErrorBody](t, w).Code)
	})

	t.Run("统计", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/stats", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, dto.StatsResponse{
			TotalBooks: 1, AvailableBooks: 0, BorrowedBooks: 1, TotalUsers: 1, ActiveBorrows: 1,
		}, decode[dto.StatsResponse](t, w))
	})

	t.Run("还书", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/return", map[string]any{"record_id": recordID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		rec := decode[dto.RecordResponse](t, w)
		assert.True(t, rec.Returned)
		assert.NotNil(t, rec.ReturnDate)
		require.NotNil(t, rec.Book)
		assert.True(t, rec.Book.Available)
	})

	t.Run("重复归还返回400", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/return", map[string]any{"record_id": recordID})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Book already returned", decode[response.ErrorBody](t, w).Error)
	})

	t.Run("归还不存在的记录返回404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/return", map[string]any{"record_id": 999}).Code)
	})

	t.Run("删除图书后记录中的book为null", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/books/1", nil).Code)

		w := s.do(t, http.MethodGet, "/api/borrow-records", nil)
		require.Equal(t, http.StatusOK, w.Code)

		records := decode[[]dto.RecordResponse](t, w)
		require.Len(t, records, 1)
		assert.Nil(t, records[0].Book)
		assert.NotNil(t, records[0].User)
	})
}

func TestSearchAPI(t *testing.T) {
	s := newTestServer(t)
	s.createBook(t, "Dune", "9780441172719")
	s.createBook(t, "Emma", "9780141439587")

	t.Run("空查询返回全部图书且不调用模型", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/search", map[string]any{"query": ""})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]dto.BookResponse](t, w), 2)
	})

	t.Run("按模型顺序返回并跳过未知ID", func(t *testing.T) {
		s.setReply(func(string) (string, error) { return `{"book_ids":[2, 99, 1]}`, nil })

		w := s.do(t, http.MethodPost, "/api/search", map[string]any{"query": "classic"})
		require.Equal(t, http.StatusOK, w.Code)

		got := decode[[]dto.BookResponse](t, w)
		require.Len(t, got, 2)
		assert.Equal(t, "Emma", got[0].Title)
		assert.Equal(t, "Dune", got[1].Title)
	})

	t.Run("模型失败返回空数组", func(t *testing.T) {
		s.setReply(func(string) (string, error) { return "", errors.New("timeout") })

		w := s.do(t, http.MethodPost, "/api/search", map[string]any{"query": "anything"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestRecommendationsAPI(t *testing.T) {
	s := newTestServer(t)
	s.createBook(t, "Dune", "9780441172719")
	s.createBook(t, "Emma", "9780141439587")

	t.Run("成功", func(t *testing.T) {
		s.setReply(func(string) (string, error) {
			return "```json\n{\"recommendations\":[{\"book_id\":2,\"reason\":\"witty\",\"rating\":9},{\"book_id\":42,\"reason\":\"gone\",\"rating\":5}]}\n```", nil
		})

		w := s.do(t, http.MethodPost, "/api/recommendations", map[string]any{"preferences": "romance"})
		require.Equal(t, http.StatusOK, w.Code)

		got := decode[dto.RecommendationsResponse](t, w)
		require.Len(t, got.Recommendations, 1)
		assert.Equal(t, int64(2), got.Recommendations[0].BookID)
		assert.Equal(t, 9, got.Recommendations[0].Rating)
		require.NotNil(t, got.Recommendations[0].Book)
		assert.Equal(t, "Emma", got.Recommendations[0].Book.Title)
	})

	t.Run("模型失败返回500", func(t *testing.T) {
		s.setReply(func(string) (string, error) { return "", errors.New("connection refused") })

		w := s.do(t, http.MethodPost, "/api/recommendations", map[string]any{"preferences": "romance"})
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "AI service error: connection refused", decode[response.ErrorBody](t, w).Error)
	})
}

func TestSummaryAPI(t *testing.T) {
	s := newTestServer(t)
	b := s.createBook(t, "Dune", "9780441172719")
	s.setReply(func(string) (string, error) { return "Spice and sand.", nil })

	for _, path := range []string{"/api/books/1/summary", "/api/book/1/summary"} {
		w := s.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "Spice and sand.", decode[dto.SummaryResponse](t, w).Summary)
	}

	s.setReply(func(string) (string, error) { return "", errors.New("quota exceeded") })
	w := s.do(t, http.MethodGet, "/api/books/1/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Error generating summary: quota exceeded", decode[dto.SummaryResponse](t, w).Summary)

	assert.NotZero(t, b.ID)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/books/999/summary", nil).Code)
}

func TestHealthAPI(t *testing.T) {
	s := newTestServer(t)

	s.setReply(func(prompt string) (string, error) {
		assert.Equal(t, assistant.HealthProbePrompt, prompt)
		return "AI Service Working!", nil
	})
	w := s.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.HealthResponse](t, w)
	assert.Equal(t, "healthy", got.Status)
	assert.Equal(t, "connected", got.Database)
	assert.Equal(t, "working", got.AIService)

	s.setReply(func(string) (string, error) { return "", errors.New("invalid api key") })
	w = s.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	got = decode[dto.HealthResponse](t, w)
	assert.Equal(t, "unhealthy", got.Status)
	assert.Equal(t, "invalid api key", got.Error)
}

func TestUsersAPI(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "a@example.com")

	w := s.do(t, http.MethodPost, "/api/users", map[string]any{"name": "Dup", "email": "a@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/users", map[string]any{"name": "Bad", "email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[response.ErrorBody](t, w).Error, "email must be a valid email address")

	w = s.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.UserResponse](t, w), 1)
}

func TestMiddlewareStack(t *testing.T) {
	s := newTestServer(t)

	t.Run("预检请求返回204", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/books", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
	})

	t.Run("未允许的Origin返回403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("请求ID", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/books", nil)
		assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)

		req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		w = httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("指标端点", func(t *testing.T) {
		s.do(t, http.MethodGet, "/api/books", nil)

		w := s.do(t, http.MethodGet, "/metrics", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), `http_requests_total{method="GET",path="/api/books"`))
	})
}
