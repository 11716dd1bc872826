package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/redisfactory"
	"github.com/dmitrymomot/redisfactory/pkg/health"
	"github.com/dmitrymomot/redisfactory/pkg/logger"
	"github.com/dmitrymomot/redisfactory/pkg/redis"
	"github.com/dmitrymomot/redisfactory/pkg/redismetrics"
)

// probe owns one client per configured URI.
type probe struct {
	clients []redisfactory.Client
	checks  health.Checks
	reg     *prometheus.Registry
	log     *slog.Logger
}

func newProbe(cfg config, log *slog.Logger) (*probe, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := redismetrics.New(reg)

	p := &probe{checks: make(health.Checks, len(cfg.URLs)), reg: reg, log: log}
	for i, uri := range cfg.URLs {
		client, err := redisfactory.GetClient(uri, cfg.Async,
			redis.WithPoolSize(cfg.PoolSize),
			redis.WithLogger(log),
			redis.WithInstrumenter(metrics),
		)
		if err != nil {
			_ = p.close()
			return nil, fmt.Errorf("redis url #%d: %w", i+1, err)
		}
		p.clients = append(p.clients, client)

		name := fmt.Sprintf("%s-%d", client.Meta().Kind, i+1)
		check := redis.Healthcheck(client)
		id := client.Meta().ID.String()
		p.checks[name] = func(ctx context.Context) error {
			return check(logger.WithAttrs(ctx, slog.String("client_id", id)))
		}
	}
	return p, nil
}

func (p *probe) close() error {
	closers := make([]io.Closer, len(p.clients))
	for i, c := range p.clients {
		closers[i] = c
	}
	return redis.Shutdown(closers...)(context.Background())
}

func (p *probe) router(checkTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/livez", health.LivenessHandler())
	r.Get("/readyz", health.ReadinessHandler(p.checks, health.WithTimeout(checkTimeout), health.WithLogger(p.log)))
	r.Handle("/metrics", promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{}))
	return r
}

// checkOnce runs every health check a single time and writes the result as YAML.
func (p *probe) checkOnce(ctx context.Context, w io.Writer, timeout time.Duration) error {
	resp, err := health.Run(ctx, p.checks, health.WithTimeout(timeout), health.WithLogger(p.log))
	if encErr := yaml.NewEncoder(w).Encode(resp); encErr != nil {
		return errors.Join(err, encErr)
	}
	return err
}

// serve blocks until ctx is done, then shuts the HTTP server down and closes
// every client.
func (p *probe) serve(ctx context.Context, cfg config) error {
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           p.router(cfg.CheckTimeout),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.log.Info("probe listening", slog.String("address", cfg.Listen), slog.Int("clients", len(p.clients)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		p.log.Info("shutting down probe")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return errors.Join(srv.Shutdown(shutdownCtx), p.close())
	})
	return g.Wait()
}
