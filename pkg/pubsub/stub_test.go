package pubsub_test

import (
	"context"
	"sync"

	"github.com/say-lem/Ventree-Backend-sub000/pkg/pubsub"
)

// stubBroker records calls and fails on demand. Shared by the registry and
// emitter tests.
type stubBroker struct {
	mu             sync.Mutex
	attempts       int
	published      []pubsub.Message
	subscribed     map[string]int
	unsubscribed   map[string]int
	publishErr     error
	publishFailN   int // fail the first N publishes; -1 fails every one
	subscribeErr   error
	unsubscribeErr error
	msgs           chan pubsub.Message
	closed         bool
}

func newStubBroker() *stubBroker {
	return &stubBroker{
		subscribed:   make(map[string]int),
		unsubscribed: make(map[string]int),
		msgs:         make(chan pubsub.Message, 16),
	}
}

func (b *stubBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attempts++
	if b.publishFailN != 0 {
		if b.publishFailN > 0 {
			b.publishFailN--
		}
		return b.publishErr
	}
	b.published = append(b.published, pubsub.Message{Topic: topic, Payload: payload})
	return nil
}

func (b *stubBroker) Subscribe(ctx context.Context, topic string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subscribeErr != nil {
		return b.subscribeErr
	}
	b.subscribed[topic]++
	return nil
}

func (b *stubBroker) Unsubscribe(ctx context.Context, topic string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.unsubscribeErr != nil {
		return b.unsubscribeErr
	}
	b.unsubscribed[topic]++
	return nil
}

func (b *stubBroker) Messages() <-chan pubsub.Message { return b.msgs }

func (b *stubBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.msgs)
	}
	return nil
}

func (b *stubBroker) attemptCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts
}

func (b *stubBroker) publishCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.published)
}

func (b *stubBroker) publishedTopics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.published))
	for i, m := range b.published {
		out[i] = m.Topic
	}
	return out
}

func (b *stubBroker) subscribeCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.subscribed[topic]
}

func (b *stubBroker) unsubscribeCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unsubscribed[topic]
}

// event is the payload type used across the pubsub tests.
type event struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}
