package redis

import "errors"

var (
	// ErrInvalidConnectionURL is returned when the connection string cannot
	// be parsed.
	ErrInvalidConnectionURL = errors.New("failed to parse redis connection string")
	// ErrNotReady is returned when Redis did not accept a connection within
	// the configured attempts.
	ErrNotReady = errors.New("redis did not become ready within the given time period")
	// ErrHealthcheckFailed is returned by the health-check helper.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
