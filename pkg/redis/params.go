package redis

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/redisfactory/pkg/dsn"
)

// paramSetter applies one URI query option to the client options.
type paramSetter func(uo *goredis.UniversalOptions, value string) error

// Query options understood for every topology. Names follow go-redis' own
// URL options; socket_timeout, socket_connect_timeout, max_connections and
// ssl_cert_reqs are accepted for compatibility with redis-py style URIs.
var commonParams = map[string]paramSetter{
	"dial_timeout":           durationParam(func(uo *goredis.UniversalOptions, d time.Duration) { uo.DialTimeout = d }),
	"socket_connect_timeout": durationParam(func(uo *goredis.UniversalOptions, d time.Duration) { uo.DialTimeout = d }),
	"read_timeout":           durationParam(func(uo *goredis.UniversalOptions, d time.Duration) { uo.ReadTimeout = d }),
	"write_timeout":          durationParam(func(uo *goredis.UniversalOptions, d time.Duration) { uo.WriteTimeout = d }),
	"socket_timeout": durationParam(func(uo *goredis.UniversalOptions, d time.Duration) {
		uo.ReadTimeout = d
		uo.WriteTimeout = d
	}),
	"pool_fifo":               boolParam(func(uo *goredis.UniversalOptions, b bool) { uo.PoolFIFO = b }),
	"pool_size":               countParam(1, func(uo *goredis.UniversalOptions, n int) { uo.PoolSize = n }),
	"max_connections":         countParam(1, func(uo *goredis.UniversalOptions, n int) { uo.PoolSize = n }),
	"pool_timeout":            durationParam(func(uo *goredis.UniversalOptions, d time.Duration) { uo.PoolTimeout = d }),
	"min_idle_conns":          countParam(0, func(uo *goredis.UniversalOptions, n int) { uo.MinIdleConns = n }),
	"max_idle_conns":          countParam(0, func(uo *goredis.UniversalOptions, n int) { uo.MaxIdleConns = n }),
	"conn_max_idle_time":      durationParam(func(uo *goredis.UniversalOptions, d time.Duration) { uo.ConnMaxIdleTime = d }),
	"conn_max_lifetime":       durationParam(func(uo *goredis.UniversalOptions, d time.Duration) { uo.ConnMaxLifetime = d }),
	"max_retries":             countParam(-1, func(uo *goredis.UniversalOptions, n int) { uo.MaxRetries = n }),
	"min_retry_backoff":       durationParam(func(uo *goredis.UniversalOptions, d time.Duration) { uo.MinRetryBackoff = d }),
	"max_retry_backoff":       durationParam(func(uo *goredis.UniversalOptions, d time.Duration) { uo.MaxRetryBackoff = d }),
	"context_timeout_enabled": boolParam(func(uo *goredis.UniversalOptions, b bool) { uo.ContextTimeoutEnabled = b }),
	"client_name":             func(uo *goredis.UniversalOptions, v string) error { uo.ClientName = v; return nil },
	"protocol":                protocolParam,
	"skip_verify":             skipVerifyParam,
	"ssl_cert_reqs":           certReqsParam,
}

var sentinelParams = map[string]paramSetter{
	"sentinel_username": func(uo *goredis.UniversalOptions, v string) error { uo.SentinelUsername = v; return nil },
	"sentinel_password": func(uo *goredis.UniversalOptions, v string) error { uo.SentinelPassword = v; return nil },
}

var clusterParams = map[string]paramSetter{
	"max_redirects":    countParam(-1, func(uo *goredis.UniversalOptions, n int) { uo.MaxRedirects = n }),
	"read_only":        boolParam(func(uo *goredis.UniversalOptions, b bool) { uo.ReadOnly = b }),
	"route_by_latency": boolParam(func(uo *goredis.UniversalOptions, b bool) { uo.RouteByLatency = b }),
	"route_randomly":   boolParam(func(uo *goredis.UniversalOptions, b bool) { uo.RouteRandomly = b }),
}

// applyParams applies the URI query options in key order so the first
// reported error is deterministic. Unknown keys are rejected.
func applyParams(uo *goredis.UniversalOptions, kind dsn.Kind, params dsn.Options) error {
	for _, key := range slices.Sorted(maps.Keys(params)) {
		set, ok := lookupParam(kind, key)
		if !ok {
			return errors.Join(ErrInvalidOption, fmt.Errorf("unknown option %q for %s topology", key, kind))
		}
		if err := set(uo, params[key]); err != nil {
			if isSecretParam(key) {
				return errors.Join(ErrInvalidOption, fmt.Errorf("option %q: %w", key, err))
			}
			return errors.Join(ErrInvalidOption, fmt.Errorf("option %s=%q: %w", key, params[key], err))
		}
	}
	return nil
}

func lookupParam(kind dsn.Kind, key string) (paramSetter, bool) {
	if set, ok := commonParams[key]; ok {
		return set, true
	}
	switch kind {
	case dsn.KindSentinel:
		set, ok := sentinelParams[key]
		return set, ok
	case dsn.KindCluster:
		set, ok := clusterParams[key]
		return set, ok
	default:
		return nil, false
	}
}

func isSecretParam(key string) bool {
	return key == "sentinel_password"
}

func durationParam(apply func(*goredis.UniversalOptions, time.Duration)) paramSetter {
	return func(uo *goredis.UniversalOptions, v string) error {
		d, err := parseDuration(v)
		if err != nil {
			return err
		}
		apply(uo, d)
		return nil
	}
}

// parseDuration accepts integer seconds, fractional seconds ("2.5") and Go
// duration strings ("250ms"). Zero and negative integers are passed through
// unscaled because go-redis uses -1 and -2 as sentinels for timeouts.
func parseDuration(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		if n <= 0 {
			return time.Duration(n), nil
		}
		return time.Duration(n) * time.Second, nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		if f < 0 {
			return 0, errors.New("negative fractional duration")
		}
		return time.Duration(f * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.New("expected seconds or a duration like 500ms")
	}
	return d, nil
}

func boolParam(apply func(*goredis.UniversalOptions, bool)) paramSetter {
	return func(uo *goredis.UniversalOptions, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("expected a boolean")
		}
		apply(uo, b)
		return nil
	}
}

func countParam(minValue int, apply func(*goredis.UniversalOptions, int)) paramSetter {
	return func(uo *goredis.UniversalOptions, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("expected an integer")
		}
		if n < minValue {
			return fmt.Errorf("must be at least %d", minValue)
		}
		apply(uo, n)
		return nil
	}
}

func protocolParam(uo *goredis.UniversalOptions, v string) error {
	switch v {
	case "2":
		uo.Protocol = 2
	case "3":
		uo.Protocol = 3
	default:
		return errors.New("expected 2 or 3")
	}
	return nil
}

func skipVerifyParam(uo *goredis.UniversalOptions, v string) error {
	skip, err := strconv.ParseBool(v)
	if err != nil {
		return errors.New("expected a boolean")
	}
	if uo.TLSConfig == nil {
		return errors.New("requires a TLS connection")
	}
	uo.TLSConfig.InsecureSkipVerify = skip
	return nil
}

func certReqsParam(uo *goredis.UniversalOptions, v string) error {
	if uo.TLSConfig == nil {
		return errors.New("requires a TLS connection")
	}
	switch v {
	case "none", "optional":
		uo.TLSConfig.InsecureSkipVerify = true
	case "required":
		uo.TLSConfig.InsecureSkipVerify = false
	default:
		return errors.New("expected none, optional or required")
	}
	return nil
}
