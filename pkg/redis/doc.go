// Package redis builds go-redis clients from resolved connection topologies.
//
// This package wraps [github.com/redis/go-redis/v9]. It takes a [dsn.Topology]
// and an execution [Mode] and returns a [Client] configured for that topology,
// without any network I/O: connections are dialed by go-redis on first use.
//
// # Topologies
//
//   - [dsn.Standalone] - a single pool created with go-redis NewClient
//   - [dsn.Sentinel] - a failover client that asks the sentinels for the current master
//   - [dsn.Cluster] - a cluster client seeded with every listed node; slots are discovered lazily
//
// # Execution Modes
//
//   - [ModeSync] returns a [*SyncClient], which embeds [goredis.UniversalClient]
//     so the full blocking go-redis API is available.
//   - [ModeAsync] returns an [*AsyncClient]. Each command returns a [*Future]
//     immediately and runs on its own goroutine; [Submit] runs any function
//     against the underlying client the same way.
//
// # Configuration
//
// Builder defaults are set with functional options:
//
//   - WithPoolSize(n int) - Maximum number of connections per node (default: 10)
//   - WithMinIdleConns(n int) - Minimum idle connections (default: 0)
//   - WithMaxIdleTime(d time.Duration) - Maximum connection idle time (default: 10m)
//   - WithMaxActiveTime(d time.Duration) - Maximum connection lifetime (default: 30m)
//   - WithReadTimeout(d time.Duration) - Read operation timeout (default: 3s)
//   - WithWriteTimeout(d time.Duration) - Write operation timeout (default: 3s)
//   - WithDialTimeout(d time.Duration) - Connection dial timeout (default: 5s)
//   - WithClientName(name string) - CLIENT SETNAME value
//   - WithTLSConfig(cfg *tls.Config) - Base TLS config for TLS-enabled URIs
//   - WithLogger(l *slog.Logger) - Logger for build events
//   - WithInstrumenter(i Instrumenter) - Per-client go-redis hook (see pkg/redismetrics)
//   - WithAsyncConcurrency(n int) - In-flight command limit for async clients (default: pool size)
//
// Query options from the URI override these defaults. Recognised keys are
// dial_timeout, read_timeout, write_timeout, pool_fifo, pool_size, pool_timeout,
// min_idle_conns, max_idle_conns, conn_max_idle_time, conn_max_lifetime,
// max_retries, min_retry_backoff, max_retry_backoff, client_name, protocol,
// context_timeout_enabled, skip_verify, plus the aliases socket_timeout,
// socket_connect_timeout, max_connections and ssl_cert_reqs. Sentinel URIs also
// accept sentinel_username and sentinel_password; cluster URIs accept
// max_redirects, read_only, route_by_latency and route_randomly.
//
// # Usage
//
//	topo, err := dsn.ParseTopology(os.Getenv("REDIS_URL"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := redis.BuildAsync(topo, redis.WithPoolSize(20))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	val, err := client.Get(ctx, "greeting").Wait(ctx)
//
// # Health Checks
//
// The [Healthcheck] function returns a closure suitable for health check endpoints:
//
//	check := redis.Healthcheck(client)
//	if err := check(ctx); err != nil {
//		// not ready
//	}
//
// # Error Handling
//
// The package defines sentinel errors for configuration failures:
//
//   - [ErrUnsupportedTopology] - Topology variant the builder does not know
//   - [ErrInvalidMode] - Execution mode other than ModeSync or ModeAsync
//   - [ErrInvalidOption] - Unknown or malformed URI query option
//   - [ErrHealthcheckFailed] - Redis ping failed
//
// Errors are wrapped using [errors.Join] to preserve the original error context.
// Errors raised by go-redis while running commands are returned unchanged.
package redis
