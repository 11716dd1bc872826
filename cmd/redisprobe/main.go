// Command redisprobe resolves Redis connection URIs and serves health and
// metrics endpoints for the clients built from them.
//
// Usage:
//
//	redisprobe -describe redis+sentinel://s1,s2/mymaster redis+cluster://n1:7000
//	redisprobe -check
//	REDIS_URLS=redis://cache:6379/0,redis+cluster://n1:7000 redisprobe
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/redisfactory/pkg/logger"
)

func main() {
	describeOnly := flag.Bool("describe", false, "Print the resolved topology of each URI and exit")
	checkOnly := flag.Bool("check", false, "Run the health checks once and exit")
	listen := flag.String("listen", "", "HTTP listen address (overrides PROBE_LISTEN)")
	flag.Parse()

	cfg, err := loadConfig(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	if *describeOnly {
		if err := describe(os.Stdout, cfg.URLs); err != nil {
			os.Exit(1)
		}
		return
	}

	log := logger.NewWithSentry(cfg.Log, cfg.Sentry, logger.ContextAttrs)
	defer logger.FlushSentry(2 * time.Second)
	goredis.SetLogger(logger.NewRedisLogger(log))

	p, err := newProbe(cfg, log)
	if err != nil {
		log.Error("failed to build redis clients", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *checkOnly {
		err := p.checkOnce(ctx, os.Stdout, cfg.CheckTimeout)
		_ = p.close()
		if err != nil {
			os.Exit(1)
		}
		return
	}

	if err := p.serve(ctx, cfg); err != nil {
		log.Error("probe stopped", "error", err)
		os.Exit(1)
	}
}
