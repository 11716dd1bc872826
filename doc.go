// Package redisfactory turns a Redis connection string into a ready-to-use
// go-redis client.
//
// One URI format covers the three ways Redis is deployed:
//
//	redis://[user:password@]host[:port][/db][?options]           standalone
//	rediss://[user:password@]host[:port][/db][?options]          standalone over TLS
//	redis+sentinel://[user:password@]h1[:port],h2/service[/db]   sentinel-managed master
//	redis+cluster://[user:password@]h1[:port],h2[:port]          cluster
//
// The default port is 6379, and 26379 for sentinel hosts. Sentinel and cluster
// URIs enable TLS with ?ssl=true.
//
// # Quick Start
//
//	client, err := redisfactory.Open(os.Getenv("REDIS_URL"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := client.Set(ctx, "greeting", "hello", time.Hour).Err(); err != nil {
//	    return err
//	}
//
// # Async Clients
//
// [OpenAsync] (or GetClient with async set) returns an [*AsyncClient] whose
// commands return a Future immediately:
//
//	client, err := redisfactory.OpenAsync(uri)
//	...
//	f := client.Get(ctx, "greeting")
//	// do other work
//	val, err := f.Wait(ctx)
//
// # Pipeline
//
// A URI goes through three stages. Each can be used on its own:
//
//  1. dsn.Parse - syntax only; returns a [dsn.Descriptor].
//  2. dsn.Resolve - classifies the descriptor into a [Topology] and validates it.
//  3. redis.Build - creates the go-redis client for a topology and mode.
//
// No stage talks to the network. Connection and authentication failures
// surface from the first command, as go-redis errors.
//
// # Errors
//
// Configuration errors wrap sentinel values and can be checked with errors.Is:
//
//	_, err := redisfactory.GetClient("redis+cluster://a:7000/1", false)
//	errors.Is(err, dsn.ErrTopologyValidation) // true
//
// Use errors.As with *dsn.Error to get the offending URI fragment. Passwords
// never appear in error messages.
package redisfactory
