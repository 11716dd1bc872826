// Package redismetrics records Prometheus metrics for clients built by pkg/redis.
//
// A [*Metrics] value implements [redis.Instrumenter]; pass it to the builder and
// every client gets a go-redis hook that counts commands, pipelines and dials,
// labelled with the client's topology and execution mode:
//
//	m := redismetrics.New(prometheus.DefaultRegisterer)
//	client, err := redis.Build(topo, redis.ModeSync, redis.WithInstrumenter(m))
package redismetrics

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/redisfactory/pkg/redis"
)

const namespace = "redisfactory"

// Result label values.
const (
	statusOK    = "ok"
	statusNil   = "nil"
	statusError = "error"
)

// Latency buckets in seconds.
var defaultBuckets = []float64{
	.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5,
}

// Metrics holds the collectors shared by every instrumented client.
type Metrics struct {
	clientsBuilt    *prometheus.CounterVec
	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	pipelinesTotal  *prometheus.CounterVec
	pipelineSize    *prometheus.HistogramVec
	dialsTotal      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// It panics if registration fails, like prometheus.MustRegister.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		clientsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clients_built_total",
			Help:      "Total number of Redis clients built",
		}, []string{"topology", "mode"}),

		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total number of Redis commands processed",
		}, []string{"topology", "mode", "command", "status"}),

		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Redis command latency in seconds",
			Buckets:   defaultBuckets,
		}, []string{"topology", "mode", "command"}),

		pipelinesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipelines_total",
			Help:      "Total number of Redis pipelines executed",
		}, []string{"topology", "mode", "status"}),

		pipelineSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_commands",
			Help:      "Number of commands per pipeline",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"topology", "mode"}),

		dialsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dials_total",
			Help:      "Total number of connection attempts",
		}, []string{"topology", "mode", "status"}),
	}

	reg.MustRegister(
		m.clientsBuilt,
		m.commandsTotal,
		m.commandDuration,
		m.pipelinesTotal,
		m.pipelineSize,
		m.dialsTotal,
	)

	return m
}

// Hook implements redis.Instrumenter.
func (m *Metrics) Hook(meta redis.Meta) goredis.Hook {
	topology, mode := meta.Kind.String(), meta.Mode.String()
	m.clientsBuilt.WithLabelValues(topology, mode).Inc()
	return &hook{m: m, topology: topology, mode: mode}
}

type hook struct {
	m        *Metrics
	topology string
	mode     string
}

func (h *hook) DialHook(next goredis.DialHook) goredis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		h.m.dialsTotal.WithLabelValues(h.topology, h.mode, status(err)).Inc()
		return conn, err
	}
}

func (h *hook) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		name := commandName(cmd)
		h.m.commandDuration.WithLabelValues(h.topology, h.mode, name).Observe(time.Since(start).Seconds())
		h.m.commandsTotal.WithLabelValues(h.topology, h.mode, name, status(err)).Inc()
		return err
	}
}

func (h *hook) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		err := next(ctx, cmds)
		h.m.pipelineSize.WithLabelValues(h.topology, h.mode).Observe(float64(len(cmds)))
		h.m.pipelinesTotal.WithLabelValues(h.topology, h.mode, status(err)).Inc()
		return err
	}
}

func status(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, goredis.Nil):
		return statusNil
	default:
		return statusError
	}
}

// commandName keeps label cardinality bounded: only the command name is used,
// never its arguments.
func commandName(cmd goredis.Cmder) string {
	name := strings.ToLower(cmd.Name())
	if name == "" {
		return "unknown"
	}
	return name
}

var _ redis.Instrumenter = (*Metrics)(nil)
