package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates the backend rejected a login or
	// registration attempt. Wrapped with the server's own message where
	// one is available so forms can display it inline.
	ErrInvalidCredentials = errors.New("apiclient.invalid_credentials")

	// ErrUnauthorized indicates a 401 on an authenticated call: the
	// bearer token is missing, invalid or expired.
	ErrUnauthorized = errors.New("apiclient.unauthorized")

	// ErrForbidden indicates the backend refused the call for the
	// current role.
	ErrForbidden = errors.New("apiclient.forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("apiclient.not_found")

	// ErrServer indicates a 5xx response.
	ErrServer = errors.New("apiclient.server_error")

	// ErrNoToken indicates an authenticated call was attempted without a
	// token source or with an empty token.
	ErrNoToken = errors.New("apiclient.no_token")
)

// NetworkError wraps a transport-level failure: the request never produced
// an HTTP response. Retryable from the caller's point of view.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
