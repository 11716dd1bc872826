package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel determines which log levels are sent to Sentry: WARN sends warnings and errors.
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"WARN"`
}

// NewWithSentry creates a logger that sends logs to both stdout and Sentry.
// If DSN is empty, only stdout logging is enabled.
// Context extractors are applied to logs sent to both destinations.
func NewWithSentry(cfg Config, sc SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	stdoutHandler := newHandler(os.Stdout, cfg)

	if sc.DSN == "" {
		return slog.New(withContext(stdoutHandler, extractors))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         sc.DSN,
		Environment: sc.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(withContext(stdoutHandler, extractors))
	}

	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if sc.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: eventLevel, // errors create Issues
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(withContext(newMultiHandler(stdoutHandler, sentryHandler), extractors))
}

// FlushSentry waits up to timeout for buffered Sentry events to be sent.
// It is a no-op when Sentry was never initialised.
func FlushSentry(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}
