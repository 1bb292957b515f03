// Package mongo bootstraps the MongoDB connection notification records are
// persisted through.
//
// Configuration is environment-driven (github.com/caarlos0/env) and the
// Connect helper retries transient startup failures, which matters when the
// backend and the database come up together:
//
//	var cfg mongo.Config
//	if err := env.Parse(&cfg); err != nil { ... }
//
//	db, err := mongo.ConnectDatabase(ctx, cfg, "ventree")
//	if err != nil { ... }
//	defer db.Client().Disconnect(ctx)
//
// A health-check helper integrates the connection into readiness probes.
// Sentinel errors support errors.Is comparisons.
package mongo
