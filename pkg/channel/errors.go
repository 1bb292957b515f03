package channel

import "errors"

var (
	// ErrEmptyID is returned when a required audience identifier is empty.
	ErrEmptyID = errors.New("audience identifier must not be empty")
	// ErrReservedDelimiter is returned when an identifier contains the ":"
	// topic delimiter.
	ErrReservedDelimiter = errors.New("audience identifier must not contain ':'")
	// ErrUnknownKind is returned for an audience kind outside the closed set.
	ErrUnknownKind = errors.New("unknown audience kind")
)
