package user

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/sqlstore"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestCreateAndListUsers(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "user.db")},
	}
	db, err := sqlstore.NewDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	repo := sqlstore.NewUserRepository(db)
	create := NewCreateUserUseCase(repo, zap.NewNop())
	list := NewListUsersUseCase(repo)

	u, err := create.Execute(ctx, CreateUserRequest{Name: "John Doe", Email: "john@example.com", Phone: "555-0101"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	t.Run("邮箱重复返回Validation错误", func(t *testing.T) {
		_, err := create.Execute(ctx, CreateUserRequest{Name: "Other", Email: "john@example.com"})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetAppError(err).Code)
	})

	users, err := list.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "555-0101", users[0].Phone)
}
