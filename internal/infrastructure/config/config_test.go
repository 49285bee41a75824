package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "library.db", cfg.Database.Path)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.True(t, cfg.AI.HealthProbe)
	assert.Empty(t, cfg.AI.APIKey, "API Key不能有默认值")
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.MQ.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LIBRARY_AI_API_KEY", "test-key")
	t.Setenv("LIBRARY_SERVER_PORT", "8081")
	t.Setenv("LIBRARY_DATABASE_DRIVER", "mysql")
	t.Setenv("LIBRARY_DATABASE_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.AI.APIKey)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "secret", cfg.Database.Password)
}

func TestLoadFrom_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9000
database:
  driver: sqlite
  path: /tmp/test.db
ai:
  model: gpt-4o-mini
  rate_limit: 2.5
cors:
  allow_origins: ["http://localhost:3000"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, 2.5, cfg.AI.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
	// 文件里没写的仍然使用默认值
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 5000},
			Database: DatabaseConfig{Driver: "sqlite", Path: "library.db"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"默认配置合法", func(*Config) {}, false},
		{"mysql不需要path", func(c *Config) { c.Database.Driver = "mysql"; c.Database.Path = "" }, false},
		{"端口为0", func(c *Config) { c.Server.Port = 0 }, true},
		{"端口超出范围", func(c *Config) { c.Server.Port = 70000 }, true},
		{"未知驱动", func(c *Config) { c.Database.Driver = "postgres" }, true},
		{"sqlite缺少path", func(c *Config) { c.Database.Path = "" }, true},
		{"负的限流", func(c *Config) { c.AI.RateLimit = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	sqlite := DatabaseConfig{Driver: "sqlite", Path: "library.db"}
	assert.Equal(t, "file:library.db?_busy_timeout=5000", sqlite.DSN())

	mysql := DatabaseConfig{
		Driver: "mysql", User: "root", Password: "pw", Host: "db", Port: 3306,
		DBName: "library", Charset: "utf8mb4", ParseTime: true, Loc: "Local",
	}
	assert.Equal(t, "root:pw@tcp(db:3306)/library?charset=utf8mb4&parseTime=true&loc=Local", mysql.DSN())
}
