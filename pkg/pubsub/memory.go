package pubsub

import (
	"context"
	"sync"
)

// MemoryBroker is an in-process Broker used in development and tests.
// Published payloads loop straight back to Messages() when the topic is
// subscribed; messages for unsubscribed topics are discarded, matching the
// semantics of a real broker with no consumers.
//
// When the inbound buffer is full the oldest pending message is not evicted;
// the new message is dropped instead, so a stalled consumer cannot block
// publishers.
type MemoryBroker struct {
	mu         sync.Mutex
	subscribed map[string]struct{}
	msgs       chan Message
	closed     bool
}

// NewMemoryBroker creates an in-memory broker with the given inbound buffer
// size. A minimum of 1 is enforced.
func NewMemoryBroker(bufferSize int) *MemoryBroker {
	return &MemoryBroker{
		subscribed: make(map[string]struct{}),
		msgs:       make(chan Message, max(bufferSize, 1)),
	}
}

func (b *MemoryBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if _, ok := b.subscribed[topic]; !ok {
		return nil
	}

	select {
	case b.msgs <- Message{Topic: topic, Payload: payload}:
	default:
		// Full buffer: drop rather than block the publisher.
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, topic string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	b.subscribed[topic] = struct{}{}
	return nil
}

func (b *MemoryBroker) Unsubscribe(ctx context.Context, topic string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	delete(b.subscribed, topic)
	return nil
}

func (b *MemoryBroker) Messages() <-chan Message {
	return b.msgs
}

// Close closes the message stream. Idempotent.
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.msgs)
	}
	return nil
}

// Subscribed reports whether the broker currently carries the topic.
// Exposed for tests asserting reference-counting behavior.
func (b *MemoryBroker) Subscribed(topic string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.subscribed[topic]
	return ok
}
