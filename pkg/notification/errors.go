package notification

import "errors"

var (
	// ErrInvalidInput is the base error for malformed creation or query input.
	ErrInvalidInput = errors.New("notification: invalid input")
	// ErrMessageTooLong is returned when the message exceeds MaxMessageLength.
	ErrMessageTooLong = errors.New("notification: message exceeds maximum length")
	// ErrUnknownType is returned for a type outside the closed enumeration.
	ErrUnknownType = errors.New("notification: unknown type")
	// ErrPayloadMismatch is returned when a typed payload does not match the
	// notification type it is attached to.
	ErrPayloadMismatch = errors.New("notification: payload does not match notification type")
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("notification: not found")
	// ErrShopMismatch is returned when a caller addresses a record outside
	// its shop scope.
	ErrShopMismatch = errors.New("notification: record belongs to another shop")
	// ErrNilStore is returned when the service is constructed without a store.
	ErrNilStore = errors.New("notification: store is nil")
)
