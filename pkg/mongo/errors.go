package mongo

import "errors"

var (
	// ErrNotReady is returned when MongoDB did not accept a connection
	// within the configured attempts.
	ErrNotReady = errors.New("failed to connect to mongo")
	// ErrHealthcheckFailed is returned by the health-check helper.
	ErrHealthcheckFailed = errors.New("mongo healthcheck failed")
)
