package redisfactory

import (
	"log/slog"
	"os"

	"github.com/dmitrymomot/redisfactory/pkg/dsn"
	"github.com/dmitrymomot/redisfactory/pkg/redis"
)

// Type aliases - public API
type (
	// Client is the handle returned by GetClient. Callers own it and must close it.
	Client = redis.Client

	// SyncClient exposes the blocking go-redis command API.
	SyncClient = redis.SyncClient

	// AsyncClient returns a Future from every command.
	AsyncClient = redis.AsyncClient

	// Option configures the client builder.
	Option = redis.Option

	// Topology is the resolved shape of a deployment: Standalone, Sentinel or Cluster.
	Topology = dsn.Topology
)

// GetClient parses uri, resolves its topology and builds a client for it.
// With async set the result is an *AsyncClient, otherwise a *SyncClient.
//
// GetClient performs no network I/O. Every error it returns is a
// configuration error and matches one of dsn.ErrURIFormat, dsn.ErrScheme,
// dsn.ErrTopologyValidation, dsn.ErrMissingServiceName, redis.ErrInvalidOption
// or redis.ErrUnsupportedTopology. Each call returns an independent client.
//
// Example:
//
//	client, err := redisfactory.GetClient("redis+sentinel://s1,s2/mymaster", false)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func GetClient(uri string, async bool, opts ...Option) (Client, error) {
	mode := redis.ModeSync
	if async {
		mode = redis.ModeAsync
	}

	topo, err := dsn.ParseTopology(uri)
	if err != nil {
		return nil, err
	}
	return redis.Build(topo, mode, opts...)
}

// Open builds a blocking client for uri.
func Open(uri string, opts ...Option) (*SyncClient, error) {
	topo, err := dsn.ParseTopology(uri)
	if err != nil {
		return nil, err
	}
	return redis.BuildSync(topo, opts...)
}

// OpenAsync builds a non-blocking client for uri.
func OpenAsync(uri string, opts ...Option) (*AsyncClient, error) {
	topo, err := dsn.ParseTopology(uri)
	if err != nil {
		return nil, err
	}
	return redis.BuildAsync(topo, opts...)
}

// MustOpen builds a blocking client or exits on failure.
// Use for simple applications where a bad REDIS_URL is fatal.
//
// Example:
//
//	client := redisfactory.MustOpen(os.Getenv("REDIS_URL"),
//	    redis.WithPoolSize(20),
//	)
func MustOpen(uri string, opts ...Option) *SyncClient {
	client, err := Open(uri, opts...)
	if err != nil {
		slog.Error("failed to build redis client", "error", err)
		os.Exit(1)
	}
	return client
}

// Describe resolves uri without building a client.
// It is the validation half of GetClient.
func Describe(uri string) (Topology, error) {
	return dsn.ParseTopology(uri)
}
