// Package health runs dependency probes for readiness reporting.
//
// Probes follow the func(context.Context) error signature used by the
// integration packages:
//
//	err := health.Readiness(ctx, log,
//		health.NewCheck("cassandra", cassandra.Healthcheck(s)),
//		health.NewCheck("redis", redis.Healthcheck(client)),
//	)
//	if errors.Is(err, health.ErrNotReady) {
//		// at least one dependency is down
//	}
//
// Every check runs even when an earlier one fails, so the joined error and the
// log name every unavailable dependency.
package health
