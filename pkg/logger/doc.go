// Package logger builds the application slog.Logger.
//
// Records go to stdout as JSON (or text in development). When a Sentry DSN is
// configured, warnings are also stored as Sentry logs and errors become issues.
// Context extractors add request-scoped attributes such as the request ID to
// every record.
//
//	log := logger.New(logger.Config{
//		Level:       "info",
//		Format:      "json",
//		SentryDSN:   cfg.SentryDSN,
//		Environment: cfg.Env,
//	}, os.Stdout, middlewares.RequestIDExtractor())
//	defer logger.Flush(2 * time.Second)
package logger
