// Package logger builds the slog loggers used by redisfactory and its tools.
//
// Loggers write JSON (or text) to stdout and can optionally forward warnings
// and errors to Sentry. Context extractors add request-scoped attributes, such
// as a client ID, to every record.
//
// # Basic Usage
//
//	log := logger.New(logger.Config{Level: slog.LevelDebug}, logger.ContextAttrs)
//
//	ctx := logger.WithAttrs(ctx, slog.String("client_id", id))
//	log.InfoContext(ctx, "ping ok")
//	// {"level":"INFO","msg":"ping ok","client_id":"..."}
//
// # Sentry Integration
//
//	log := logger.NewWithSentry(cfg, logger.SentryConfig{
//		DSN:      os.Getenv("SENTRY_DSN"),
//		MinLevel: slog.LevelWarn,
//	})
//	defer logger.FlushSentry(2 * time.Second)
//
// If the DSN is empty, or Sentry fails to initialise, logging continues to
// stdout only. Errors create Sentry issues; warnings are stored as logs.
//
// # go-redis Messages
//
// go-redis prints pool and reconnect messages through its own logger.
// [NewRedisLogger] routes them through slog:
//
//	goredis.SetLogger(logger.NewRedisLogger(log))
//
// # Defaults
//
// [NewNope] returns a logger whose handler is disabled for every level. It is
// the default logger of the client builder.
package logger
