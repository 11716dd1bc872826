package redis

import (
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/redisfactory/pkg/dsn"
)

// Mode selects the command surface of a built client.
type Mode int

const (
	// ModeSync returns a *SyncClient; commands block the calling goroutine.
	ModeSync Mode = iota
	// ModeAsync returns an *AsyncClient; commands return a *Future immediately.
	ModeAsync
)

func (m Mode) String() string {
	switch m {
	case ModeSync:
		return "sync"
	case ModeAsync:
		return "async"
	default:
		return "unknown"
	}
}

// Meta identifies a built client. ID is unique per Build call, even for
// identical topologies.
type Meta struct {
	ID       uuid.UUID
	Topology dsn.Topology
	Kind     dsn.Kind
	Mode     Mode
}

// Client is the handle returned by Build. It owns one go-redis client
// (a connection pool, or a cluster slot map) and must be closed by the caller.
type Client interface {
	Meta() Meta
	// Universal returns the underlying go-redis client.
	Universal() goredis.UniversalClient
	Close() error
}

// Instrumenter provides a go-redis hook for each client at build time.
type Instrumenter interface {
	Hook(meta Meta) goredis.Hook
}

// SyncClient exposes the blocking go-redis command API.
type SyncClient struct {
	goredis.UniversalClient
	meta Meta
}

func (c *SyncClient) Meta() Meta {
	return c.meta
}

func (c *SyncClient) Universal() goredis.UniversalClient {
	return c.UniversalClient
}

var (
	_ Client = (*SyncClient)(nil)
	_ Client = (*AsyncClient)(nil)
)
