package logger

import (
	"context"
	"fmt"
	"log/slog"
)

// RedisLogger adapts a *slog.Logger to the go-redis internal logger,
// so pool and reconnect messages share the application's handler:
//
//	goredis.SetLogger(logger.NewRedisLogger(log))
type RedisLogger struct {
	log   *slog.Logger
	level slog.Level
}

// NewRedisLogger logs go-redis messages at warn level. A nil log yields a no-op logger.
func NewRedisLogger(log *slog.Logger) *RedisLogger {
	if log == nil {
		log = NewNope()
	}
	return &RedisLogger{log: log.With(slog.String("component", "go-redis")), level: slog.LevelWarn}
}

// Printf implements the go-redis logging interface.
func (l *RedisLogger) Printf(ctx context.Context, format string, v ...any) {
	if !l.log.Enabled(ctx, l.level) {
		return
	}
	l.log.Log(ctx, l.level, fmt.Sprintf(format, v...))
}
