// Package logger builds configured log/slog loggers and provides typed
// attribute helpers so log keys stay consistent across the codebase.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithJSONFormatter(),
//	    logger.WithAttr(slog.String("service", "notifyd")),
//	)
//
//	log.LogAttrs(ctx, slog.LevelInfo, "Notification created",
//	    logger.ShopID(shopID),
//	    logger.NotificationID(id),
//	)
//
// Components take a *slog.Logger through their options and default to
// slog.Default(), so nothing in this module depends on a global logger
// being configured.
package logger
