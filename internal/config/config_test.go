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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTTL)
	assert.Equal(t, time.Hour, cfg.Stats.SnapshotInterval)
	assert.Error(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock.yaml")
	content := "database:\n  url: postgres://file\nauth:\n  jwt_secret: from-file\n  access_ttl: 5m\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("STOCK_AUTH_JWT_SECRET", "from-env")
	t.Setenv("STOCK_REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://file", cfg.Database.URL)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
