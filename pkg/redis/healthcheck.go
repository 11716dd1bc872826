package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

// Healthcheck returns a closure that validates connectivity for health endpoints.
// Cluster clients ping every known master; other clients send a single PING.
// Compatible with standard health check interfaces that expect func(context.Context) error.
func Healthcheck(client Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}

		var err error
		switch rc := client.Universal().(type) {
		case *goredis.ClusterClient:
			err = rc.ForEachMaster(ctx, func(ctx context.Context, node *goredis.Client) error {
				return node.Ping(ctx).Err()
			})
		case nil:
			return ErrHealthcheckFailed
		default:
			err = rc.Ping(ctx).Err()
		}

		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
