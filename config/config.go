// Package config loads the front end configuration from an optional .env file
// and the process environment. Variables are prefixed with BLOG_, e.g. BLOG_API_URL.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dmitrymomot/blogfront/pkg/apiclient"
	"github.com/dmitrymomot/blogfront/pkg/logger"
)

// Prefix is the environment variable prefix.
const Prefix = "BLOG_"

var (
	ErrMissingAPIURL = errors.New("config: BLOG_API_URL is required")
	ErrCookieSecret  = errors.New("config: BLOG_COOKIE_SECRET must be at least 32 bytes")
	ErrRateLimit     = errors.New("config: BLOG_RATE_LIMIT and BLOG_RATE_BURST must be positive")
)

// Config holds every runtime setting.
type Config struct {
	Addr            string        `koanf:"addr"`
	Env             string        `koanf:"env"`
	APIURL          string        `koanf:"api_url"`
	CookieSecret    string        `koanf:"cookie_secret"`
	RedisURL        string        `koanf:"redis_url"`
	SentryDSN       string        `koanf:"sentry_dsn"`
	RefetchSchedule string        `koanf:"refetch_schedule"`
	LogLevel        string        `koanf:"log_level"`
	LogFormat       string        `koanf:"log_format"`
	APITimeout      time.Duration `koanf:"api_timeout"`
	QueryTTL        time.Duration `koanf:"query_ttl"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RateLimit       float64       `koanf:"rate_limit"`
	RateBurst       int           `koanf:"rate_burst"`
	CookieSecure    bool          `koanf:"cookie_secure"`
}

// Default returns the configuration used for unset keys.
func Default() Config {
	return Config{
		Addr:            ":8080",
		Env:             "development",
		APIURL:          "http://localhost:5000",
		RefetchSchedule: "@every 1m",
		LogLevel:        "info",
		LogFormat:       "json",
		APITimeout:      10 * time.Second,
		QueryTTL:        30 * time.Second,
		RequestTimeout:  15 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		RateLimit:       1,
		RateBurst:       5,
	}
}

// Load reads envFile when it exists, then the environment, over the defaults.
// Environment variables win over the file.
func Load(envFile string) (Config, error) {
	k := koanf.New(".")

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := k.Load(file.Provider(envFile), dotenv.ParserEnv(Prefix, ".", keyName)); err != nil {
				return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
			}
		}
	}
	if err := k.Load(env.Provider(Prefix, ".", keyName), nil); err != nil {
		return Config{}, fmt.Errorf("config: load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, cfg.Validate()
}

// keyName maps BLOG_API_URL to api_url.
func keyName(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, Prefix))
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.APIURL) == "" {
		errs = append(errs, ErrMissingAPIURL)
	}
	if c.CookieSecret != "" && len(c.CookieSecret) < 32 {
		errs = append(errs, ErrCookieSecret)
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		errs = append(errs, ErrRateLimit)
	}
	return errors.Join(errs...)
}

// IsProduction reports whether Env is "production".
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// API returns the backend client configuration.
func (c Config) API() apiclient.Config {
	return apiclient.Config{BaseURL: c.APIURL, Timeout: c.APITimeout}
}

// Log returns the logger configuration.
func (c Config) Log() logger.Config {
	return logger.Config{
		Level:       c.LogLevel,
		Format:      c.LogFormat,
		SentryDSN:   c.SentryDSN,
		Environment: c.Env,
	}
}
