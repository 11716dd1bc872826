// Package health runs named health checks and serves them as HTTP probes.
//
// Checks have the signature func(context.Context) error, which is what
// redis.Healthcheck returns, so built clients plug in directly:
//
//	checks := health.Checks{
//		"cache":  redis.Healthcheck(cache),
//		"queues": redis.Healthcheck(queues),
//	}
//
//	r := chi.NewRouter()
//	r.Get("/livez", health.LivenessHandler())
//	r.Get("/readyz", health.ReadinessHandler(checks, health.WithTimeout(2*time.Second)))
//
// [Run] executes the same checks once, for command line probes:
//
//	resp, err := health.Run(ctx, checks)
//	if errors.Is(err, health.ErrCheckTimeout) {
//		// at least one check hit the deadline
//	}
//
// All checks of a run execute concurrently and share one deadline
// (default 5s). A failing check never cancels the others.
//
// # Response Formats
//
// Handlers answer with plain text unless the client asks for JSON or YAML
// through ?format= or the Accept header. A failed readiness run lists the
// failing checks:
//
//	Service Unavailable: queues
//
// The JSON form:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "cache":  {"status": "healthy", "duration": "412µs"},
//	    "queues": {"status": "unhealthy", "error": "dial tcp 10.0.0.7:6379: connect: connection refused", "duration": "1.2ms"}
//	  }
//	}
//
// # Error Handling
//
//   - [ErrCheckFailed] - One or more checks failed
//   - [ErrCheckTimeout] - The shared deadline expired before all checks passed
//   - [*CheckError] - One failing check; [FailedChecks] lists them all
package health
