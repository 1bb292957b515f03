// Package pubsub provides the real-time fan-out layer for notifications:
// a broker abstraction with Redis and in-memory implementations, a
// reference-counted subscription registry, and an emitter that publishes
// with retry/backoff and dispatches inbound broker messages to local
// handlers.
//
// # Architecture
//
//   - Broker: the transport (Publish/Subscribe/Unsubscribe plus an inbound
//     message stream). RedisBroker adapts go-redis pub/sub; MemoryBroker is
//     a process-local loopback for development and tests.
//   - Registry: topic -> handler sets, reference-counted against the broker.
//     The first handler on a topic subscribes at the broker, the last one
//     removed unsubscribes.
//   - Emitter: serializes payloads to JSON, publishes with exponential
//     backoff, and pumps broker messages into the registry.
//
// # Delivery semantics
//
// Publishing is best-effort: the durable store is written before anything is
// emitted, so a publish failure is retried a fixed number of times, then
// logged and swallowed. Consumers that miss a real-time message still see
// the notification through direct queries. Delivery is at-least-once;
// handlers must be idempotent.
//
// # Basic usage
//
//	broker := pubsub.NewRedisBroker(redisClient)
//	emitter := pubsub.NewEmitter[notification.Notification](broker)
//	defer emitter.Close()
//
//	sub, err := emitter.SubscribeToStaff(ctx, "shop-1", "staff-9", onNotify)
//	...
//	emitter.EmitToStaff(ctx, "shop-1", "staff-9", notif)
package pubsub
