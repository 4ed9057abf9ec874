package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/config"
)

// Tests in this file set process environment variables and must not run in parallel.

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, "http://localhost:5000", cfg.API().BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API().Timeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "BLOG_API_URL=http://api.internal:5000\nBLOG_QUERY_TTL=2m\nBLOG_RATE_BURST=9\nBLOG_ENV=staging\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("BLOG_ENV", "production")
	t.Setenv("BLOG_COOKIE_SECURE", "true")
	t.Setenv("BLOG_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://api.internal:5000", cfg.APIURL)
	assert.Equal(t, 2*time.Minute, cfg.QueryTTL)
	assert.Equal(t, 9, cfg.RateBurst)
	assert.True(t, cfg.CookieSecure)
	assert.True(t, cfg.IsProduction(), "environment wins over the file")

	lc := cfg.Log()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "production", lc.Environment)
}

func TestValidate(t *testing.T) {
	t.Setenv("BLOG_COOKIE_SECRET", "short")
	t.Setenv("BLOG_RATE_LIMIT", "0")

	_, err := config.Load("")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrCookieSecret)
	assert.ErrorIs(t, err, config.ErrRateLimit)
	assert.NotErrorIs(t, err, config.ErrMissingAPIURL)
}
