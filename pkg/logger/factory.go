package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the output encoding of the stdout handler.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config holds stdout logger configuration.
type Config struct {
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	Format Format     `env:"LOG_FORMAT" envDefault:"json"`
}

// New creates a stdout logger with optional context extractors.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(withContext(newHandler(os.Stdout, cfg), extractors))
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if strings.EqualFold(string(cfg.Format), string(FormatText)) {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
