package main

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/redisfactory/pkg/logger"
)

// config is read from the environment. Positional arguments replace URLs.
type config struct {
	URLs            []string      `env:"REDIS_URLS" envSeparator:"," envDefault:"redis://localhost:6379/0"`
	Async           bool          `env:"REDIS_ASYNC"`
	PoolSize        int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	Listen          string        `env:"PROBE_LISTEN" envDefault:":9121"`
	CheckTimeout    time.Duration `env:"PROBE_CHECK_TIMEOUT" envDefault:"3s"`
	ShutdownTimeout time.Duration `env:"PROBE_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Log    logger.Config
	Sentry logger.SentryConfig
}

func loadConfig(args []string) (config, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, err
	}
	if len(args) > 0 {
		cfg.URLs = args
	}
	return cfg, nil
}
