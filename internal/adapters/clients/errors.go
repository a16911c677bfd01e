// Package clients is the outbound HTTP layer used to fetch remote locale
// packs.
package clients

import "errors"

// Transport failures. The acl package translates them into domain errors.
var (
	// ErrCircuitOpen means requests are being shed after repeated failures.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last attempt's error.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
