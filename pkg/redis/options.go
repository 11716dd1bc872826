package redis

import (
	"crypto/tls"
	"log/slog"
	"time"

	"github.com/dmitrymomot/redisfactory/pkg/logger"
)

// Option configures how a client is built.
// Query options in the connection URI take precedence over these values.
type Option func(*options)

type options struct {
	tlsConfig        *tls.Config
	logger           *slog.Logger
	instrumenter     Instrumenter
	clientName       string
	poolSize         int
	minIdleConns     int
	asyncConcurrency int
	maxIdleTime      time.Duration
	maxActiveTime    time.Duration
	readTimeout      time.Duration
	writeTimeout     time.Duration
	dialTimeout      time.Duration
}

func defaultOptions() *options {
	return &options{
		logger:        logger.NewNope(),
		poolSize:      10,
		minIdleConns:  0,
		maxIdleTime:   10 * time.Minute,
		maxActiveTime: 30 * time.Minute,
		readTimeout:   3 * time.Second,
		writeTimeout:  3 * time.Second,
		dialTimeout:   defaultDialTimeout,
	}
}

const defaultDialTimeout = 5 * time.Second

// WithPoolSize sets the maximum number of connections per node.
// Default: 10
func WithPoolSize(n int) Option {
	return func(o *options) {
		o.poolSize = n
	}
}

// WithMinIdleConns sets the minimum number of idle connections kept open.
// The pool dials these in the background as soon as the client exists.
// Default: 0
func WithMinIdleConns(n int) Option {
	return func(o *options) {
		o.minIdleConns = n
	}
}

// WithMaxIdleTime sets the maximum time a connection can be idle before being closed.
// Default: 10 minutes
func WithMaxIdleTime(d time.Duration) Option {
	return func(o *options) {
		o.maxIdleTime = d
	}
}

// WithMaxActiveTime sets the maximum lifetime of a connection.
// Default: 30 minutes
func WithMaxActiveTime(d time.Duration) Option {
	return func(o *options) {
		o.maxActiveTime = d
	}
}

// WithReadTimeout sets the timeout for read operations.
// Default: 3 seconds
func WithReadTimeout(d time.Duration) Option {
	return func(o *options) {
		o.readTimeout = d
	}
}

// WithWriteTimeout sets the timeout for write operations.
// Default: 3 seconds
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) {
		o.writeTimeout = d
	}
}

// WithDialTimeout sets the timeout for establishing new connections.
// Default: 5 seconds
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = d
	}
}

// WithClientName sets the name reported by CLIENT SETNAME on every connection.
func WithClientName(name string) Option {
	return func(o *options) {
		o.clientName = name
	}
}

// WithTLSConfig sets the base TLS configuration used when the URI enables TLS.
// The config is cloned for every client. It has no effect on plain connections.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *options) {
		o.tlsConfig = cfg
	}
}

// WithLogger sets the logger used to report built clients.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithInstrumenter attaches a hook from i to every client built.
func WithInstrumenter(i Instrumenter) Option {
	return func(o *options) {
		o.instrumenter = i
	}
}

// WithAsyncConcurrency limits how many commands an AsyncClient runs at once.
// Default: the resolved pool size.
func WithAsyncConcurrency(n int) Option {
	return func(o *options) {
		o.asyncConcurrency = n
	}
}
