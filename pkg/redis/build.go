package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/redisfactory/pkg/dsn"
)

// Build creates a client for t in the given mode.
//
// Build never touches the network: go-redis dials lazily, so connection and
// authentication errors surface on the first command. Errors returned here are
// configuration errors only.
//
// Example:
//
//	topo, err := dsn.ParseTopology("redis+cluster://node1:7000,node2:7001")
//	if err != nil {
//		return err
//	}
//	client, err := redis.Build(topo, redis.ModeSync, redis.WithPoolSize(20))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
func Build(t dsn.Topology, mode Mode, opts ...Option) (Client, error) {
	switch mode {
	case ModeSync:
		c, err := BuildSync(t, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ModeAsync:
		c, err := BuildAsync(t, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, errors.Join(ErrInvalidMode, fmt.Errorf("mode %d", mode))
	}
}

// BuildSync creates a blocking client for t.
func BuildSync(t dsn.Topology, opts ...Option) (*SyncClient, error) {
	rc, meta, _, err := build(t, ModeSync, opts)
	if err != nil {
		return nil, err
	}
	return &SyncClient{UniversalClient: rc, meta: meta}, nil
}

// BuildAsync creates a non-blocking client for t.
func BuildAsync(t dsn.Topology, opts ...Option) (*AsyncClient, error) {
	rc, meta, limit, err := build(t, ModeAsync, opts)
	if err != nil {
		return nil, err
	}
	return newAsyncClient(rc, meta, limit), nil
}

// build returns the go-redis client, its metadata and the async concurrency limit.
func build(t dsn.Topology, mode Mode, opts []Option) (goredis.UniversalClient, Meta, int, error) {
	if t == nil {
		return nil, Meta{}, 0, errors.Join(ErrUnsupportedTopology, errors.New("nil topology"))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	uo, err := universalOptions(t, o)
	if err != nil {
		return nil, Meta{}, 0, err
	}

	rc, err := newUniversalClient(t, uo)
	if err != nil {
		return nil, Meta{}, 0, err
	}

	meta := Meta{
		ID:       uuid.New(),
		Topology: t,
		Kind:     t.Kind(),
		Mode:     mode,
	}

	if o.instrumenter != nil {
		if hook := o.instrumenter.Hook(meta); hook != nil {
			rc.AddHook(hook)
		}
	}

	o.logger.Debug("redis client built",
		slog.String("id", meta.ID.String()),
		slog.String("topology", meta.Kind.String()),
		slog.String("mode", mode.String()),
		slog.String("addrs", strings.Join(t.Addrs(), ",")),
		slog.Bool("tls", t.TLS()),
	)

	limit := o.asyncConcurrency
	if limit <= 0 {
		limit = uo.PoolSize
	}
	if limit <= 0 {
		// go-redis sizes the pool itself when PoolSize is zero.
		limit = defaultPoolSize()
	}

	return rc, meta, limit, nil
}

// defaultPoolSize mirrors the pool size go-redis picks for PoolSize 0.
func defaultPoolSize() int {
	return 10 * runtime.GOMAXPROCS(0)
}

// newUniversalClient dispatches on the topology variant.
func newUniversalClient(t dsn.Topology, uo *goredis.UniversalOptions) (goredis.UniversalClient, error) {
	switch t.(type) {
	case dsn.Standalone:
		return goredis.NewClient(uo.Simple()), nil
	case dsn.Sentinel:
		return goredis.NewFailoverClient(uo.Failover()), nil
	case dsn.Cluster:
		return goredis.NewClusterClient(uo.Cluster()), nil
	default:
		return nil, errors.Join(ErrUnsupportedTopology, fmt.Errorf("%T", t))
	}
}

// universalOptions merges builder options, topology attributes and URI query
// options, in that order of precedence (last wins).
func universalOptions(t dsn.Topology, o *options) (*goredis.UniversalOptions, error) {
	uo := &goredis.UniversalOptions{
		Addrs:           t.Addrs(),
		ClientName:      o.clientName,
		PoolSize:        o.poolSize,
		MinIdleConns:    o.minIdleConns,
		ConnMaxIdleTime: o.maxIdleTime,
		ConnMaxLifetime: o.maxActiveTime,
		ReadTimeout:     o.readTimeout,
		WriteTimeout:    o.writeTimeout,
		DialTimeout:     o.dialTimeout,
	}

	if c := t.Auth(); c != nil {
		uo.Username = c.Username
		uo.Password = c.Password
	}

	switch t := t.(type) {
	case dsn.Standalone:
		if t.DB != nil {
			uo.DB = *t.DB
		}
		if t.SSL {
			uo.TLSConfig = tlsConfig(o.tlsConfig, t.Addr.Host)
		}
	case dsn.Sentinel:
		uo.MasterName = t.ServiceName
		if t.DB != nil {
			uo.DB = *t.DB
		}
		if t.SSL {
			uo.TLSConfig = tlsConfig(o.tlsConfig, "")
		}
	case dsn.Cluster:
		if t.SSL {
			uo.TLSConfig = tlsConfig(o.tlsConfig, "")
		}
	default:
		return nil, errors.Join(ErrUnsupportedTopology, fmt.Errorf("%T", t))
	}

	if err := applyParams(uo, t.Kind(), t.Params()); err != nil {
		return nil, err
	}

	// go-redis hands TLSConfig to the sentinel connections as well.
	if s, ok := t.(dsn.Sentinel); ok && uo.TLSConfig != nil {
		uo.Dialer = primaryTLSDialer(s.Addrs(), uo.TLSConfig, uo.DialTimeout)
		uo.TLSConfig = nil
	}

	return uo, nil
}

// primaryTLSDialer dials the listed sentinels over plain TCP and every other
// address, which is the primary or a replica, over TLS.
func primaryTLSDialer(sentinels []string, cfg *tls.Config, timeout time.Duration) func(context.Context, string, string) (net.Conn, error) {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	plain := make(map[string]struct{}, len(sentinels))
	for _, addr := range sentinels {
		plain[addr] = struct{}{}
	}

	nd := &net.Dialer{Timeout: timeout, KeepAlive: 5 * time.Minute}
	td := &tls.Dialer{NetDialer: nd, Config: cfg}

	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		if _, ok := plain[addr]; ok {
			return nd.DialContext(ctx, network, addr)
		}
		return td.DialContext(ctx, network, addr)
	}
}

// tlsConfig clones base so clients never share a *tls.Config. An empty
// serverName lets crypto/tls derive it from each dialed address.
func tlsConfig(base *tls.Config, serverName string) *tls.Config {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if base != nil {
		cfg = base.Clone()
	}
	if cfg.ServerName == "" {
		cfg.ServerName = serverName
	}
	return cfg
}
