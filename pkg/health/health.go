package health

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/redisfactory/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

// CheckFunc matches the closure returned by redis.Healthcheck.
type CheckFunc func(ctx context.Context) error

// Checks is a map of named health check functions.
type Checks map[string]CheckFunc

// Response is the aggregated result of a health run.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty" yaml:"checks,omitempty"`
	Status string           `json:"status" yaml:"status"`
}

// Check is the result of a single named check.
type Check struct {
	Status   string `json:"status" yaml:"status"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
	Duration string `json:"duration" yaml:"duration"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures health check behavior.
type Option func(*config)

// WithTimeout sets the deadline shared by all checks of one run.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used to report failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes all checks concurrently and waits for every one of them.
// The returned error wraps ErrCheckFailed, plus ErrCheckTimeout when the
// shared deadline expired, and names the failing checks in key order.
func Run(ctx context.Context, checks Checks, opts ...Option) (*Response, error) {
	return run(ctx, checks, newConfig(opts...))
}

func run(ctx context.Context, checks Checks, cfg *config) (*Response, error) {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]Check, len(checks))
		failed  = make(map[string]error)
	)

	for name, check := range checks {
		g.Go(func() error {
			start := time.Now()
			err := check(ctx)
			result := Check{Status: StatusHealthy, Duration: time.Since(start).Round(time.Microsecond).String()}
			if err != nil {
				result.Status = StatusUnhealthy
				result.Error = err.Error()
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			results[name] = result
			if err != nil {
				failed[name] = err
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	resp := &Response{Status: StatusHealthy, Checks: results}
	if len(failed) == 0 {
		return resp, nil
	}

	resp.Status = StatusUnhealthy
	errs := []error{ErrCheckFailed}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		errs = append(errs, ErrCheckTimeout)
	}
	for _, name := range slices.Sorted(maps.Keys(failed)) {
		errs = append(errs, &CheckError{Name: name, Err: failed[name]})
	}
	return resp, errors.Join(errs...)
}
