package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig(nil)
		require.NoError(t, err)
		require.Equal(t, []string{"redis://localhost:6379/0"}, cfg.URLs)
		require.Equal(t, ":9121", cfg.Listen)
		require.Equal(t, 3*time.Second, cfg.CheckTimeout)
		require.Equal(t, slog.LevelInfo, cfg.Log.Level)
		require.Equal(t, slog.LevelWarn, cfg.Sentry.MinLevel)
		require.False(t, cfg.Async)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("REDIS_URLS", "redis://a:6379,redis+cluster://b:7000")
		t.Setenv("REDIS_ASYNC", "true")
		t.Setenv("PROBE_CHECK_TIMEOUT", "750ms")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := loadConfig(nil)
		require.NoError(t, err)
		require.Equal(t, []string{"redis://a:6379", "redis+cluster://b:7000"}, cfg.URLs)
		require.True(t, cfg.Async)
		require.Equal(t, 750*time.Millisecond, cfg.CheckTimeout)
		require.Equal(t, slog.LevelDebug, cfg.Log.Level)
	})

	t.Run("arguments replace urls", func(t *testing.T) {
		t.Setenv("REDIS_URLS", "redis://a:6379")

		cfg, err := loadConfig([]string{"redis+sentinel://s1/mymaster"})
		require.NoError(t, err)
		require.Equal(t, []string{"redis+sentinel://s1/mymaster"}, cfg.URLs)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("PROBE_CHECK_TIMEOUT", "soon")

		_, err := loadConfig(nil)
		require.Error(t, err)
	})
}
