// Package redis bootstraps the Redis connection the notification fan-out
// layer publishes and subscribes through.
//
// It wraps the go-redis client with:
//
//   - A Connect helper that retries the initial connection using the
//     supplied configuration, so a backend instance starting before Redis
//     is reachable does not crash-loop.
//   - A health-check helper for liveness and readiness probes.
//
// Configuration comes from environment variables via github.com/caarlos0/env:
//
//	var cfg redis.Config
//	if err := env.Parse(&cfg); err != nil { ... }
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer client.Close()
//
// Sentinel errors wrap the underlying go-redis errors with errors.Join for
// errors.Is comparisons.
package redis
