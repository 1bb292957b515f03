// notifyd wires the notification subsystem together: configuration from the
// environment, Mongo-backed persistence, Redis pub/sub fan-out, and the
// notification service constructed once at startup and shut down cleanly on
// SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/say-lem/Ventree-Backend-sub000/pkg/logger"
	"github.com/say-lem/Ventree-Backend-sub000/pkg/mongo"
	"github.com/say-lem/Ventree-Backend-sub000/pkg/notification"
	"github.com/say-lem/Ventree-Backend-sub000/pkg/pubsub"
	"github.com/say-lem/Ventree-Backend-sub000/pkg/redis"
)

type config struct {
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT" envDefault:"json"`
	Database    string        `env:"MONGODB_DATABASE" envDefault:"ventree"`
	EmitTimeout time.Duration `env:"NOTIFY_EMIT_TIMEOUT" envDefault:"30s"`

	Mongo mongo.Config
	Redis redis.Config
}

func main() {
	// Local development convenience; absent .env files are fine.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("Failed to parse configuration", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	log := logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithAttr(slog.String("service", "notifyd")),
	)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.LogAttrs(ctx, slog.LevelError, "notifyd exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, log *slog.Logger) error {
	db, err := mongo.ConnectDatabase(ctx, cfg.Mongo, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Client().Disconnect(disconnectCtx)
	}()

	store := notification.NewMongoStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	broker := pubsub.NewRedisBroker(redisClient)
	emitter, err := pubsub.NewEmitter[notification.Notification](broker,
		pubsub.WithEmitterLogger(log),
	)
	if err != nil {
		return err
	}

	svc, err := notification.NewService(store, emitter,
		notification.WithServiceLogger(log),
		notification.WithEmitTimeout(cfg.EmitTimeout),
	)
	if err != nil {
		return err
	}

	log.LogAttrs(ctx, slog.LevelInfo, "notifyd started")
	<-ctx.Done()
	log.LogAttrs(ctx, slog.LevelInfo, "notifyd shutting down")

	// Drain in-flight emissions before tearing down the broker.
	if err := svc.Close(); err != nil {
		log.LogAttrs(ctx, slog.LevelWarn, "Service close failed", logger.Error(err))
	}
	return emitter.Close()
}
