package redis

import (
	"crypto/tls"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/redisfactory/pkg/dsn"
)

func TestParseDuration(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   string
		want time.Duration
	}{
		{in: "5", want: 5 * time.Second},
		{in: "0", want: 0},
		{in: "-1", want: -1},
		{in: "2.5", want: 2500 * time.Millisecond},
		{in: "250ms", want: 250 * time.Millisecond},
		{in: "1m30s", want: 90 * time.Second},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			got, err := parseDuration(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{"", "soon", "-1.5", "5 seconds"} {
		_, err := parseDuration(bad)
		require.Error(t, err, bad)
	}
}

func TestApplyParams(t *testing.T) {
	t.Parallel()

	t.Run("common options", func(t *testing.T) {
		t.Parallel()

		uo := &goredis.UniversalOptions{}
		err := applyParams(uo, dsn.KindStandalone, dsn.Options{
			"dial_timeout":    "2",
			"socket_timeout":  "1.5",
			"max_connections": "40",
			"min_idle_conns":  "2",
			"max_retries":     "-1",
			"pool_fifo":       "true",
			"client_name":     "api",
			"protocol":        "2",
		})
		require.NoError(t, err)
		require.Equal(t, 2*time.Second, uo.DialTimeout)
		require.Equal(t, 1500*time.Millisecond, uo.ReadTimeout)
		require.Equal(t, 1500*time.Millisecond, uo.WriteTimeout)
		require.Equal(t, 40, uo.PoolSize)
		require.Equal(t, 2, uo.MinIdleConns)
		require.Equal(t, -1, uo.MaxRetries)
		require.True(t, uo.PoolFIFO)
		require.Equal(t, "api", uo.ClientName)
		require.Equal(t, 2, uo.Protocol)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		err := applyParams(&goredis.UniversalOptions{}, dsn.KindStandalone, dsn.Options{"poolsize": "3"})
		require.ErrorIs(t, err, ErrInvalidOption)
		require.Contains(t, err.Error(), `"poolsize"`)
	})

	t.Run("topology specific keys", func(t *testing.T) {
		t.Parallel()

		uo := &goredis.UniversalOptions{}
		require.NoError(t, applyParams(uo, dsn.KindCluster, dsn.Options{"max_redirects": "5", "route_by_latency": "1"}))
		require.Equal(t, 5, uo.MaxRedirects)
		require.True(t, uo.RouteByLatency)

		err := applyParams(&goredis.UniversalOptions{}, dsn.KindStandalone, dsn.Options{"read_only": "true"})
		require.ErrorIs(t, err, ErrInvalidOption)

		err = applyParams(&goredis.UniversalOptions{}, dsn.KindCluster, dsn.Options{"sentinel_username": "x"})
		require.ErrorIs(t, err, ErrInvalidOption)

		uo = &goredis.UniversalOptions{}
		require.NoError(t, applyParams(uo, dsn.KindSentinel, dsn.Options{"sentinel_username": "ops", "sentinel_password": "s3cret"}))
		require.Equal(t, "ops", uo.SentinelUsername)
		require.Equal(t, "s3cret", uo.SentinelPassword)
	})

	t.Run("malformed values", func(t *testing.T) {
		t.Parallel()

		for key, value := range map[string]string{
			"pool_size":      "0",
			"min_idle_conns": "-3",
			"pool_fifo":      "maybe",
			"protocol":       "4",
			"read_timeout":   "later",
		} {
			err := applyParams(&goredis.UniversalOptions{}, dsn.KindStandalone, dsn.Options{key: value})
			require.ErrorIs(t, err, ErrInvalidOption, key)
			require.Contains(t, err.Error(), key)
		}
	})

	t.Run("first error is deterministic", func(t *testing.T) {
		t.Parallel()

		for range 10 {
			err := applyParams(&goredis.UniversalOptions{}, dsn.KindStandalone, dsn.Options{"zzz": "1", "aaa": "1"})
			require.ErrorContains(t, err, `"aaa"`)
		}
	})

	t.Run("secret values are not echoed", func(t *testing.T) {
		t.Parallel()

		err := applyParams(&goredis.UniversalOptions{}, dsn.KindCluster, dsn.Options{"sentinel_password": "hunter2"})
		require.ErrorIs(t, err, ErrInvalidOption)
		require.NotContains(t, err.Error(), "hunter2")
	})
}

func TestApplyParams_TLS(t *testing.T) {
	t.Parallel()

	t.Run("requires TLS", func(t *testing.T) {
		t.Parallel()

		for _, key := range []string{"skip_verify", "ssl_cert_reqs"} {
			err := applyParams(&goredis.UniversalOptions{}, dsn.KindStandalone, dsn.Options{key: "none"})
			require.ErrorIs(t, err, ErrInvalidOption, key)
		}
	})

	t.Run("skip_verify", func(t *testing.T) {
		t.Parallel()

		uo := &goredis.UniversalOptions{TLSConfig: &tls.Config{}}
		require.NoError(t, applyParams(uo, dsn.KindStandalone, dsn.Options{"skip_verify": "true"}))
		require.True(t, uo.TLSConfig.InsecureSkipVerify)
	})

	t.Run("ssl_cert_reqs", func(t *testing.T) {
		t.Parallel()

		uo := &goredis.UniversalOptions{TLSConfig: &tls.Config{}}
		require.NoError(t, applyParams(uo, dsn.KindStandalone, dsn.Options{"ssl_cert_reqs": "none"}))
		require.True(t, uo.TLSConfig.InsecureSkipVerify)

		require.NoError(t, applyParams(uo, dsn.KindStandalone, dsn.Options{"ssl_cert_reqs": "required"}))
		require.False(t, uo.TLSConfig.InsecureSkipVerify)

		err := applyParams(uo, dsn.KindStandalone, dsn.Options{"ssl_cert_reqs": "sometimes"})
		require.ErrorIs(t, err, ErrInvalidOption)
	})

	t.Run("base config is not mutated", func(t *testing.T) {
		t.Parallel()

		base := &tls.Config{}
		client := mustBuild(t, "rediss://localhost?skip_verify=true", ModeSync, WithTLSConfig(base))

		require.False(t, base.InsecureSkipVerify)
		require.True(t, client.Universal().(*goredis.Client).Options().TLSConfig.InsecureSkipVerify)
	})
}
