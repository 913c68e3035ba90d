package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_KEY_PATH", "")
	t.Setenv("JWT_REFRESH_KEY_PATH", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("REDIS_DB", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "task-manager-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "auth:revoked:", cfg.Auth.RevokedKeyPrefix)
	assert.Equal(t, "migrations", cfg.Postgres.MigrationsDir)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	assert.Empty(t, cfg.Auth.AccessKeyPath)
	assert.Empty(t, cfg.Auth.RefreshKeyPath)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_ACCESS_KEY_PATH", "/etc/task-manager/access.key")
	t.Setenv("JWT_REFRESH_KEY_PATH", "/etc/task-manager/refresh.key")
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_BCRYPT_COST", "4")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/etc/task-manager/access.key", cfg.Auth.AccessKeyPath)
	assert.Equal(t, "/etc/task-manager/refresh.key", cfg.Auth.RefreshKeyPath)
	assert.Equal(t, "127.0.0.1:9090", cfg.App.Addr())
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Postgres.RunMigrations)
	assert.Zero(t, cfg.App.RequestTimeout())
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "primary")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("APP_PORT", "http")
	t.Setenv("AUTH_BCRYPT_COST", "40")
	t.Setenv("POSTGRES_MIN_CONNS", "20")
	t.Setenv("POSTGRES_MAX_CONNS", "5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_PORT")
	assert.Contains(t, err.Error(), "AUTH_BCRYPT_COST")
	assert.Contains(t, err.Error(), "POSTGRES_MIN_CONNS")
}

func TestGetEnvAsInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "ten")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
}
