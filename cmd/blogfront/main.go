// Command blogfront serves the blog front end.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dmitrymomot/blogfront"
	"github.com/dmitrymomot/blogfront/config"
	"github.com/dmitrymomot/blogfront/handlers"
	"github.com/dmitrymomot/blogfront/middlewares"
	"github.com/dmitrymomot/blogfront/pkg/apiclient"
	"github.com/dmitrymomot/blogfront/pkg/cache"
	"github.com/dmitrymomot/blogfront/pkg/cookie"
	"github.com/dmitrymomot/blogfront/pkg/health"
	"github.com/dmitrymomot/blogfront/pkg/logger"
	"github.com/dmitrymomot/blogfront/pkg/metrics"
	"github.com/dmitrymomot/blogfront/pkg/query"
	"github.com/dmitrymomot/blogfront/pkg/redis"
	"github.com/dmitrymomot/blogfront/pkg/session"
	"github.com/dmitrymomot/blogfront/routes"
	"github.com/dmitrymomot/blogfront/services"
	"github.com/dmitrymomot/blogfront/views"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log(), os.Stdout, middlewares.RequestIDExtractor()).With("component", "blogfront")

	if err := run(cfg, log); err != nil {
		log.Error("application error", "error", err)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()
	m := metrics.New()

	// Redis backs sessions and the query cache when configured; otherwise both live in memory.
	var (
		store     cache.Store
		readiness []blogfront.HealthOption
		shutdown  []blogfront.RunOption
	)
	if cfg.RedisURL != "" {
		client, err := redis.Open(ctx, cfg.RedisURL, redis.WithLogger(log))
		if err != nil {
			return err
		}
		store = cache.NewRedis(client, cache.WithPrefix("blogfront"))
		readiness = append(readiness, blogfront.WithReadinessCheck("redis", redis.Healthcheck(client)))
		shutdown = append(shutdown, blogfront.ShutdownHook(redis.Shutdown(client)))
	} else {
		log.Warn("BLOG_REDIS_URL is empty, using in-memory sessions and cache")
		mem := cache.NewMemory()
		store = mem
		shutdown = append(shutdown, blogfront.ShutdownHook(func(context.Context) error { return mem.Close() }))
	}

	client, err := apiclient.New(cfg.API(),
		apiclient.WithObserver(m.ObserveBackend),
		apiclient.WithContextHeader("X-Request-ID", middlewares.RequestIDFromContext),
	)
	if err != nil {
		return err
	}
	readiness = append(readiness, blogfront.WithReadinessCheck("backend", health.HTTPCheck(nil, client.BaseURL()+"/api/posts?limit=1")))

	q := query.New(store,
		query.WithTTL(cfg.QueryTTL),
		query.WithLogger(log),
		query.WithObserver(m.ObserveQuery),
	)

	svc := services.New(client)
	limit := middlewares.RateLimit(cfg.RateLimit,
		middlewares.WithRateLimitBurst(cfg.RateBurst),
		middlewares.WithRateLimitObserver(m.RateLimited),
	)
	auth := handlers.NewAuthHandler(svc.Users, limit)
	blog := handlers.NewBlogHandler(svc, q)
	admin := handlers.NewAdminHandler(svc, q)
	rh := routes.New(handlers.Pages(auth, blog, admin))

	// Keep the home page warm between visits.
	if cfg.RefetchSchedule != "" {
		if _, err := query.Refetch(q, cfg.RefetchSchedule, handlers.NSPosts, handlers.LatestPostsKey(), blog.LatestPosts); err != nil {
			return err
		}
	}

	app := blogfront.New(
		blogfront.WithCustomLogger(log),
		blogfront.WithCookieOptions(
			cookie.WithSecret(cfg.CookieSecret),
			cookie.WithSecure(cfg.CookieSecure),
			cookie.WithSameSite(http.SameSiteLaxMode),
		),
		blogfront.WithSession(session.NewCacheStore(store),
			blogfront.WithSessionSecure(cfg.CookieSecure),
		),
		blogfront.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Metrics(m),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTimeout),
		),
		blogfront.WithHandlers(rh, auth, blog, admin),
		blogfront.WithToastRenderer(handlers.Toasts),
		blogfront.WithErrorHandler(handlers.ErrorHandler),
		blogfront.WithNotFoundHandler(rh.NotFound()),
		blogfront.WithStaticFiles(views.StaticPath, views.Assets, "static"),
		blogfront.WithMount("/metrics", m.Handler()),
		blogfront.WithHealthChecks(readiness...),
	)

	opts := []blogfront.RunOption{
		blogfront.Logger(log),
		blogfront.ShutdownTimeout(cfg.ShutdownTimeout),
		blogfront.StartupHook(q.StartFunc()),
		blogfront.ShutdownHook(q.Shutdown()),
	}
	opts = append(opts, shutdown...)
	opts = append(opts, blogfront.ShutdownHook(logger.Shutdown(2*time.Second)))

	log.Info("starting", "addr", cfg.Addr, "env", cfg.Env, "api", client.BaseURL())
	return app.Run(cfg.Addr, opts...)
}
