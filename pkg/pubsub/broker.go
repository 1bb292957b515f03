package pubsub

import "context"

// Message is one inbound broker payload addressed to a topic.
type Message struct {
	Topic   string
	Payload []byte
}

// Broker is the pub/sub transport shared by all topics within a process.
// Implementations must be safe for concurrent use; Publish may be called
// from many goroutines at once.
//
// Subscribe and Unsubscribe are synchronous: a nil return means the broker
// acknowledged the operation. Messages returns the stream of payloads for
// all currently subscribed topics; the channel is closed by Close.
type Broker interface {
	// Publish submits a payload to a topic.
	Publish(ctx context.Context, topic string, payload []byte) error

	// Subscribe starts delivery of the topic's messages to Messages().
	// Errors surface synchronously; subscription setup must not silently no-op.
	Subscribe(ctx context.Context, topic string) error

	// Unsubscribe stops delivery for the topic.
	Unsubscribe(ctx context.Context, topic string) error

	// Messages returns the inbound message stream.
	Messages() <-chan Message

	// Close releases broker resources and closes the message stream.
	// Close is idempotent.
	Close() error
}
