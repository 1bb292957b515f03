package pubsub

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisBroker adapts Redis pub/sub to the Broker interface. A single
// *redis.PubSub connection carries every subscribed topic; messages from all
// topics are multiplexed onto one inbound channel.
type RedisBroker struct {
	client redis.UniversalClient
	msgs   chan Message

	mu     sync.Mutex
	ps     *redis.PubSub
	closed bool

	done chan struct{}
	wg   sync.WaitGroup
}

// RedisBrokerOption configures a RedisBroker.
type RedisBrokerOption func(*redisBrokerConfig)

type redisBrokerConfig struct {
	bufferSize int
}

// WithRedisBufferSize sets the inbound message channel buffer.
// Default is 64; a minimum of 1 is enforced.
func WithRedisBufferSize(n int) RedisBrokerOption {
	return func(c *redisBrokerConfig) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}

// NewRedisBroker creates a broker over an established Redis client.
// The client's lifecycle is owned by the caller; Close releases only the
// pub/sub connection.
func NewRedisBroker(client redis.UniversalClient, opts ...RedisBrokerOption) *RedisBroker {
	cfg := &redisBrokerConfig{bufferSize: 64}
	for _, opt := range opts {
		opt(cfg)
	}

	return &RedisBroker{
		client: client,
		msgs:   make(chan Message, cfg.bufferSize),
		done:   make(chan struct{}),
	}
}

// Publish submits the payload to the topic. Failures are returned to the
// caller; retry policy lives in the Emitter, not here.
func (b *RedisBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := b.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("redis publish to %q: %w", topic, err)
	}
	return nil
}

// Subscribe registers the topic on the shared pub/sub connection, opening it
// lazily on first use. The broker-level acknowledgement is awaited, so a nil
// return means messages for the topic will reach Messages().
func (b *RedisBroker) Subscribe(ctx context.Context, topic string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	if b.ps == nil {
		// Open the connection without channels; topics are added dynamically.
		b.ps = b.client.Subscribe(ctx)
		b.wg.Add(1)
		go b.pump(b.ps)
	}

	if err := b.ps.Subscribe(ctx, topic); err != nil {
		return fmt.Errorf("redis subscribe to %q: %w", topic, err)
	}
	return nil
}

// Unsubscribe removes the topic from the shared pub/sub connection.
func (b *RedisBroker) Unsubscribe(ctx context.Context, topic string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if b.ps == nil {
		return nil
	}

	if err := b.ps.Unsubscribe(ctx, topic); err != nil {
		return fmt.Errorf("redis unsubscribe from %q: %w", topic, err)
	}
	return nil
}

// Messages returns the multiplexed inbound stream.
func (b *RedisBroker) Messages() <-chan Message {
	return b.msgs
}

// Close shuts down the pub/sub connection and closes the message stream.
// The underlying Redis client is left open for its owner to close.
func (b *RedisBroker) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	ps := b.ps
	b.mu.Unlock()

	close(b.done)
	var err error
	if ps != nil {
		err = ps.Close()
	}

	b.wg.Wait()
	close(b.msgs)
	return err
}

// pump moves messages from the pub/sub connection onto the broker stream.
// It exits when the connection is closed.
func (b *RedisBroker) pump(ps *redis.PubSub) {
	defer b.wg.Done()

	for msg := range ps.Channel() {
		m := Message{Topic: msg.Channel, Payload: []byte(msg.Payload)}
		select {
		case b.msgs <- m:
		case <-b.done:
			return
		}
	}
}
