package pubsub

import "errors"

var (
	// ErrClosed is returned when an operation is attempted after Close.
	ErrClosed = errors.New("pubsub: closed")
	// ErrNilBroker is returned when a component is constructed without a broker.
	ErrNilBroker = errors.New("pubsub: broker is nil")
	// ErrNilHandler is returned when Subscribe is called with a nil handler.
	ErrNilHandler = errors.New("pubsub: handler is nil")
	// ErrNotSubscribed is returned when unsubscribing a topic with no handlers.
	ErrNotSubscribed = errors.New("pubsub: topic has no subscription")
)
