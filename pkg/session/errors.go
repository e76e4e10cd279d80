package session

import "errors"

var (
	// ErrNotInitialized indicates Login or Register was called before
	// Initialize was started.
	ErrNotInitialized = errors.New("session.not_initialized")

	// ErrSuperseded indicates an authentication attempt completed after a
	// logout (or session expiry) that was issued later; its result was
	// discarded instead of resurrecting the session.
	ErrSuperseded = errors.New("session.superseded")
)
