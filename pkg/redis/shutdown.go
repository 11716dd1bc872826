package redis

import (
	"context"
	"errors"
	"io"
)

// Shutdown returns a function that closes every given client.
// All clients are closed even if some fail; the errors are joined.
//
// Example:
//
//	stop := redis.Shutdown(cache, queue)
//	defer func() { _ = stop(context.Background()) }()
func Shutdown(clients ...io.Closer) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		var errs []error
		for _, c := range clients {
			if c == nil {
				continue
			}
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
