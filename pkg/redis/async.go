package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/semaphore"
)

// AsyncClient runs every command on its own goroutine and returns a *Future
// right away. At most the configured number of commands run at once; callers
// are never blocked while waiting for a slot.
type AsyncClient struct {
	client goredis.UniversalClient
	sem    *semaphore.Weighted
	meta   Meta
}

func newAsyncClient(client goredis.UniversalClient, meta Meta, limit int) *AsyncClient {
	return &AsyncClient{
		client: client,
		sem:    semaphore.NewWeighted(int64(max(limit, 1))),
		meta:   meta,
	}
}

func (c *AsyncClient) Meta() Meta {
	return c.meta
}

func (c *AsyncClient) Universal() goredis.UniversalClient {
	return c.client
}

// Close closes the underlying client. Commands still in flight fail with the
// go-redis closed-client error.
func (c *AsyncClient) Close() error {
	return c.client.Close()
}

// Submit runs fn against c on a new goroutine.
// Errors from fn, including redis.Nil, are delivered unchanged through the Future.
func Submit[T any](ctx context.Context, c *AsyncClient, fn func(ctx context.Context, client goredis.UniversalClient) (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		if err := c.sem.Acquire(ctx, 1); err != nil {
			var zero T
			f.resolve(zero, err)
			return
		}
		defer c.sem.Release(1)

		f.resolve(fn(ctx, c.client))
	}()
	return f
}

// Do sends an arbitrary command.
func (c *AsyncClient) Do(ctx context.Context, args ...any) *Future[any] {
	return Submit(ctx, c, func(ctx context.Context, rc goredis.UniversalClient) (any, error) {
		return rc.Do(ctx, args...).Result()
	})
}

func (c *AsyncClient) Ping(ctx context.Context) *Future[string] {
	return Submit(ctx, c, func(ctx context.Context, rc goredis.UniversalClient) (string, error) {
		return rc.Ping(ctx).Result()
	})
}

func (c *AsyncClient) Get(ctx context.Context, key string) *Future[string] {
	return Submit(ctx, c, func(ctx context.Context, rc goredis.UniversalClient) (string, error) {
		return rc.Get(ctx, key).Result()
	})
}

func (c *AsyncClient) Set(ctx context.Context, key string, value any, ttl time.Duration) *Future[string] {
	return Submit(ctx, c, func(ctx context.Context, rc goredis.UniversalClient) (string, error) {
		return rc.Set(ctx, key, value, ttl).Result()
	})
}

func (c *AsyncClient) Del(ctx context.Context, keys ...string) *Future[int64] {
	return Submit(ctx, c, func(ctx context.Context, rc goredis.UniversalClient) (int64, error) {
		return rc.Del(ctx, keys...).Result()
	})
}

// Pipelined queues the commands issued by fn and sends them in one round trip.
func (c *AsyncClient) Pipelined(ctx context.Context, fn func(goredis.Pipeliner) error) *Future[[]goredis.Cmder] {
	return Submit(ctx, c, func(ctx context.Context, rc goredis.UniversalClient) ([]goredis.Cmder, error) {
		return rc.Pipelined(ctx, fn)
	})
}

// Future is the pending result of an asynchronous command.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(val T, err error) {
	f.val, f.err = val, err
	close(f.done)
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait suspends until the result is available or ctx is done.
// Cancelling ctx does not cancel the command; use the ctx given to the
// command for that.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result blocks until the result is available.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}
