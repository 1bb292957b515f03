package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/say-lem/Ventree-Backend-sub000/pkg/logger"
)

// Handler consumes a decoded message for a topic it subscribed to.
// Handlers run on the emitter's dispatch goroutine and should return
// quickly; long work belongs on the handler's own goroutine.
type Handler[T any] func(ctx context.Context, msg T)

// Registry tracks which local handlers listen on which topics and keeps the
// broker's subscription set in sync: the first handler on a topic issues a
// broker subscribe, the last one removed issues a broker unsubscribe.
//
// The broker subscribe happens before the handler is registered, so there is
// no window where the registry advertises a topic the broker does not carry.
// The price is the occasional duplicate delivery, never a gap.
type Registry[T any] struct {
	broker Broker
	logger *slog.Logger

	mu     sync.Mutex
	topics map[string]map[*Subscription[T]]struct{}
}

// Subscription is the handle returned by Subscribe; it removes exactly the
// handler it was created for.
type Subscription[T any] struct {
	topic    string
	handler  Handler[T]
	registry *Registry[T]
}

// Topic returns the topic the subscription listens on.
func (s *Subscription[T]) Topic() string { return s.topic }

// Unsubscribe removes this handler from the topic. If it was the last one,
// the topic is unsubscribed at the broker as well.
func (s *Subscription[T]) Unsubscribe(ctx context.Context) error {
	return s.registry.remove(ctx, s)
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	logger *slog.Logger
}

// WithRegistryLogger sets the logger for the Registry.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(c *registryConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewRegistry creates a registry bound to a broker.
func NewRegistry[T any](broker Broker, opts ...RegistryOption) (*Registry[T], error) {
	if broker == nil {
		return nil, ErrNilBroker
	}

	cfg := &registryConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Registry[T]{
		broker: broker,
		logger: cfg.logger,
		topics: make(map[string]map[*Subscription[T]]struct{}),
	}, nil
}

// Subscribe registers a handler for the topic, subscribing at the broker
// first when this is the topic's first handler. A broker failure leaves the
// registry untouched and is returned to the caller.
func (r *Registry[T]) Subscribe(ctx context.Context, topic string, h Handler[T]) (*Subscription[T], error) {
	if h == nil {
		return nil, ErrNilHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.topics[topic]; !ok {
		if err := r.broker.Subscribe(ctx, topic); err != nil {
			return nil, fmt.Errorf("subscribe %q: %w", topic, err)
		}
		r.topics[topic] = make(map[*Subscription[T]]struct{})
	}

	sub := &Subscription[T]{topic: topic, handler: h, registry: r}
	r.topics[topic][sub] = struct{}{}
	return sub, nil
}

// Unsubscribe removes every handler for the topic and unsubscribes it at the
// broker. Returns ErrNotSubscribed if the topic has no handlers.
func (r *Registry[T]) Unsubscribe(ctx context.Context, topic string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.topics[topic]; !ok {
		return ErrNotSubscribed
	}

	delete(r.topics, topic)
	if err := r.broker.Unsubscribe(ctx, topic); err != nil {
		return fmt.Errorf("unsubscribe %q: %w", topic, err)
	}
	return nil
}

// HandlerCount returns the number of handlers registered for the topic.
func (r *Registry[T]) HandlerCount(topic string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.topics[topic])
}

// Dispatch decodes the payload and invokes every handler registered for the
// topic. A malformed payload is logged and dropped. A panicking handler is
// isolated so the remaining handlers still run.
func (r *Registry[T]) Dispatch(ctx context.Context, topic string, payload []byte) {
	var msg T
	if err := json.Unmarshal(payload, &msg); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "Dropping malformed message",
			logger.Topic(topic),
			logger.Error(err),
		)
		return
	}

	r.mu.Lock()
	handlers := make([]Handler[T], 0, len(r.topics[topic]))
	for sub := range r.topics[topic] {
		handlers = append(handlers, sub.handler)
	}
	r.mu.Unlock()

	for _, h := range handlers {
		r.invoke(ctx, topic, h, msg)
	}
}

func (r *Registry[T]) invoke(ctx context.Context, topic string, h Handler[T], msg T) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.LogAttrs(ctx, slog.LevelError, "Notification handler panicked",
				logger.Topic(topic),
				slog.Any("panic", rec),
			)
		}
	}()

	h(ctx, msg)
}

// Topics returns a snapshot of the currently subscribed topics.
func (r *Registry[T]) Topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.topics))
	for topic := range r.topics {
		out = append(out, topic)
	}
	return out
}

// Close unsubscribes every topic at the broker and clears the registry.
// Broker failures are logged; cleanup continues for the remaining topics.
func (r *Registry[T]) Close(ctx context.Context) {
	r.mu.Lock()
	topics := make([]string, 0, len(r.topics))
	for topic := range r.topics {
		topics = append(topics, topic)
	}
	clear(r.topics)
	r.mu.Unlock()

	for _, topic := range topics {
		if err := r.broker.Unsubscribe(ctx, topic); err != nil {
			r.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to unsubscribe topic during close",
				logger.Topic(topic),
				logger.Error(err),
			)
		}
	}
}

func (r *Registry[T]) remove(ctx context.Context, sub *Subscription[T]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.topics[sub.topic]
	if !ok {
		return ErrNotSubscribed
	}
	if _, ok := set[sub]; !ok {
		return ErrNotSubscribed
	}

	delete(set, sub)
	if len(set) > 0 {
		return nil
	}

	delete(r.topics, sub.topic)
	if err := r.broker.Unsubscribe(ctx, sub.topic); err != nil {
		return fmt.Errorf("unsubscribe %q: %w", sub.topic, err)
	}
	return nil
}
