package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_ACCESS_SECRET", "")
	t.Setenv("AUTH_JWT_REFRESH_SECRET", "")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL_HOURS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTTL())
	assert.Equal(t, 30, cfg.Auth.RateLimitMax)
	assert.False(t, cfg.Lifecycle.StrictTransitions)
	assert.False(t, cfg.App.IsProduction())
}

func TestLoadRejectsDefaultSecretsInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_ACCESS_SECRET", "")
	t.Setenv("AUTH_JWT_REFRESH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsSharedSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_ACCESS_SECRET", "same")
	t.Setenv("AUTH_JWT_REFRESH_SECRET", "same")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_ACCESS_SECRET", "a-secret")
	t.Setenv("AUTH_JWT_REFRESH_SECRET", "r-secret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "5")
	t.Setenv("LIFECYCLE_STRICT_TRANSITIONS", "true")
	t.Setenv("POSTGRES_DSN", "postgres://app:secret@db:5432/jobs")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTTL())
	assert.True(t, cfg.Lifecycle.StrictTransitions)
}

func TestLoadReportsMalformedValues(t *testing.T) {
	t.Setenv("AUTH_JWT_ACCESS_SECRET", "")
	t.Setenv("AUTH_JWT_REFRESH_SECRET", "")
	t.Setenv("REDIS_DB", "zero")
	t.Setenv("LIFECYCLE_STRICT_TRANSITIONS", "sometimes")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
	assert.Contains(t, err.Error(), "LIFECYCLE_STRICT_TRANSITIONS")
}

func TestLoadRequiresDatabaseInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_ACCESS_SECRET", "a-secret")
	t.Setenv("AUTH_JWT_REFRESH_SECRET", "r-secret")
	t.Setenv("POSTGRES_DSN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_DSN")

	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Postgres.DSN)
}
