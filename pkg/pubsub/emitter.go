package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/say-lem/Ventree-Backend-sub000/pkg/channel"
	"github.com/say-lem/Ventree-Backend-sub000/pkg/logger"
)

// Emitter publishes notification payloads to broker topics and dispatches
// inbound broker messages to locally registered handlers.
//
// Publish is best-effort: failures are retried with exponential backoff
// (1s, 2s, 4s by default) and, once attempts are exhausted, logged and
// swallowed. The caller has already durably persisted the record by the
// time Publish runs, so a missed real-time delivery is recoverable through
// direct queries.
type Emitter[T any] struct {
	broker   Broker
	registry *Registry[T]
	logger   *slog.Logger

	attempts int
	backoff  time.Duration

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// EmitterOption configures an Emitter.
type EmitterOption func(*emitterConfig)

type emitterConfig struct {
	logger   *slog.Logger
	attempts int
	backoff  time.Duration
}

// WithEmitterLogger sets the logger for the Emitter and its registry.
func WithEmitterLogger(l *slog.Logger) EmitterOption {
	return func(c *emitterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPublishAttempts sets how many times a publish is tried before giving
// up. Default is 3.
func WithPublishAttempts(n int) EmitterOption {
	return func(c *emitterConfig) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithBackoffBase sets the delay after the first failed attempt; each
// subsequent delay doubles. Default is 1s.
func WithBackoffBase(d time.Duration) EmitterOption {
	return func(c *emitterConfig) {
		if d > 0 {
			c.backoff = d
		}
	}
}

// NewEmitter creates an emitter over the broker and starts the inbound
// dispatch loop. Call Close during shutdown to stop it.
func NewEmitter[T any](broker Broker, opts ...EmitterOption) (*Emitter[T], error) {
	if broker == nil {
		return nil, ErrNilBroker
	}

	cfg := &emitterConfig{
		logger:   slog.Default(),
		attempts: 3,
		backoff:  time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	registry, err := NewRegistry[T](broker, WithRegistryLogger(cfg.logger))
	if err != nil {
		return nil, err
	}

	e := &Emitter[T]{
		broker:   broker,
		registry: registry,
		logger:   cfg.logger,
		attempts: cfg.attempts,
		backoff:  cfg.backoff,
		done:     make(chan struct{}),
	}

	e.wg.Add(1)
	go e.dispatchLoop()

	return e, nil
}

// Publish serializes v and submits it to the topic, retrying transient
// broker failures with exponential backoff. Delivery failures are not
// returned: after the final attempt the error is logged and nil is
// returned. Only a serialization failure surfaces to the caller.
func (e *Emitter[T]) Publish(ctx context.Context, topic string, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal payload for %q: %w", topic, err)
	}

	var lastErr error
	for attempt := 0; attempt < e.attempts; attempt++ {
		if lastErr = e.broker.Publish(ctx, topic, payload); lastErr == nil {
			return nil
		}

		// Backoff runs to completion regardless of the caller's context:
		// the originating request already returned on the persistence path.
		delay := e.backoff << attempt
		e.logger.LogAttrs(ctx, slog.LevelWarn, "Publish failed, backing off",
			logger.Topic(topic),
			logger.RetryCount(attempt+1),
			slog.Duration("backoff", delay),
			logger.Error(lastErr),
		)

		select {
		case <-time.After(delay):
		case <-e.done:
			return nil
		}
	}

	e.logger.LogAttrs(ctx, slog.LevelError, "Giving up on notification delivery",
		logger.Topic(topic),
		logger.RetryCount(e.attempts),
		logger.Error(lastErr),
	)
	return nil
}

// EmitToShop publishes to the shop-wide topic.
func (e *Emitter[T]) EmitToShop(ctx context.Context, shopID string, v T) error {
	return e.Publish(ctx, channel.ShopTopic(shopID), v)
}

// EmitToOwner publishes to the owner-scoped topic.
func (e *Emitter[T]) EmitToOwner(ctx context.Context, shopID, ownerProfileID string, v T) error {
	return e.Publish(ctx, channel.OwnerTopic(shopID, ownerProfileID), v)
}

// EmitToStaff publishes to the staff-scoped topic.
func (e *Emitter[T]) EmitToStaff(ctx context.Context, shopID, staffID string, v T) error {
	return e.Publish(ctx, channel.StaffTopic(shopID, staffID), v)
}

// EmitToUser publishes to the user-scoped topic.
func (e *Emitter[T]) EmitToUser(ctx context.Context, userID string, v T) error {
	return e.Publish(ctx, channel.UserTopic(userID), v)
}

// Subscribe registers a handler for an arbitrary topic.
func (e *Emitter[T]) Subscribe(ctx context.Context, topic string, h Handler[T]) (*Subscription[T], error) {
	return e.registry.Subscribe(ctx, topic, h)
}

// SubscribeToShop registers a handler for the shop-wide topic.
func (e *Emitter[T]) SubscribeToShop(ctx context.Context, shopID string, h Handler[T]) (*Subscription[T], error) {
	return e.registry.Subscribe(ctx, channel.ShopTopic(shopID), h)
}

// SubscribeToOwner registers a handler for the owner-scoped topic.
func (e *Emitter[T]) SubscribeToOwner(ctx context.Context, shopID, ownerProfileID string, h Handler[T]) (*Subscription[T], error) {
	return e.registry.Subscribe(ctx, channel.OwnerTopic(shopID, ownerProfileID), h)
}

// SubscribeToStaff registers a handler for the staff-scoped topic.
func (e *Emitter[T]) SubscribeToStaff(ctx context.Context, shopID, staffID string, h Handler[T]) (*Subscription[T], error) {
	return e.registry.Subscribe(ctx, channel.StaffTopic(shopID, staffID), h)
}

// SubscribeToUser registers a handler for the user-scoped topic.
func (e *Emitter[T]) SubscribeToUser(ctx context.Context, userID string, h Handler[T]) (*Subscription[T], error) {
	return e.registry.Subscribe(ctx, channel.UserTopic(userID), h)
}

// Registry exposes the underlying subscription registry.
func (e *Emitter[T]) Registry() *Registry[T] {
	return e.registry
}

// Close stops the dispatch loop, unsubscribes every topic, and closes the
// broker. Idempotent.
func (e *Emitter[T]) Close() error {
	var err error
	e.closeOnce.Do(func() {
		close(e.done)
		e.registry.Close(context.Background())
		err = e.broker.Close()
		e.wg.Wait()
	})
	return err
}

// dispatchLoop pumps inbound broker messages into the registry until the
// broker stream closes or the emitter shuts down.
func (e *Emitter[T]) dispatchLoop() {
	defer e.wg.Done()

	for {
		select {
		case msg, ok := <-e.broker.Messages():
			if !ok {
				return
			}
			e.registry.Dispatch(context.Background(), msg.Topic, msg.Payload)
		case <-e.done:
			return
		}
	}
}
