package middlewares

import (
	"math"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/blogfront/internal"
)

// Rate limit defaults.
const (
	DefaultRateLimit = 10
	DefaultRateBurst = 20
	DefaultRateIdle  = 10 * time.Minute
)

// RateLimitConfig configures the rate limit middleware.
type RateLimitConfig struct {
	Key     internal.Extractor // Client key; defaults to internal.ClientKey
	OnLimit func()             // Called for every rejected request
	Rate    rate.Limit         // Tokens per second
	Burst   int
	Idle    time.Duration // Buckets unused for this long are dropped
}

// RateLimitOption configures RateLimitConfig.
type RateLimitOption func(*RateLimitConfig)

// WithRateLimitKey sets the extractor used to bucket clients.
func WithRateLimitKey(e internal.Extractor) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		cfg.Key = e
	}
}

// WithRateLimitBurst sets the bucket size.
func WithRateLimitBurst(burst int) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		cfg.Burst = burst
	}
}

// WithRateLimitIdle sets how long an unused bucket is kept.
func WithRateLimitIdle(d time.Duration) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		cfg.Idle = d
	}
}

// WithRateLimitObserver registers a callback invoked for each rejected request.
func WithRateLimitObserver(fn func()) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		cfg.OnLimit = fn
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterSet struct {
	buckets   map[string]*bucket
	lastSweep time.Time
	mu        sync.Mutex
}

func (s *limiterSet) get(key string, cfg *RateLimitConfig, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= cfg.Idle {
		for k, b := range s.buckets {
			if now.Sub(b.lastSeen) >= cfg.Idle {
				delete(s.buckets, k)
			}
		}
		s.lastSweep = now
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(cfg.Rate, cfg.Burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// RateLimit returns middleware that applies a token bucket per client.
// Signed-in visitors are keyed by user ID, anonymous ones by IP.
// Rejected requests get a 429 HTTPError with a Retry-After header.
// It is meant for the form POST endpoints, which each cost a backend call.
func RateLimit(perSecond float64, opts ...RateLimitOption) internal.Middleware {
	cfg := &RateLimitConfig{
		Key:   internal.ClientKey,
		Rate:  rate.Limit(perSecond),
		Burst: DefaultRateBurst,
		Idle:  DefaultRateIdle,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRateLimit
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateBurst
	}
	if cfg.Idle <= 0 {
		cfg.Idle = DefaultRateIdle
	}

	set := &limiterSet{buckets: make(map[string]*bucket), lastSweep: time.Now()}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			key, ok := cfg.Key.Extract(c)
			if !ok {
				return next(c)
			}

			now := time.Now()
			res := set.get(key, cfg, now).ReserveN(now, 1)
			if delay := res.DelayFrom(now); delay > 0 {
				res.CancelAt(now)
				if cfg.OnLimit != nil {
					cfg.OnLimit()
				}
				c.SetHeader("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				c.LogWarn("rate limited", "client", key, "path", c.Request().URL.Path)
				return internal.ErrTooManyRequests("Too many requests. Please slow down.")
			}
			return next(c)
		}
	}
}
