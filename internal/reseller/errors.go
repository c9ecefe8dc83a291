package reseller

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNoToken is wrapped by AuthError when the token endpoint answers without a token field
var ErrNoToken = errors.New("no token in response")

// AuthError means a bearer token could not be obtained. Every call depending on it fails.
type AuthError struct {
	Err    error
	Body   string
	Status int
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("reseller auth failed: status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("reseller auth failed: %v", e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AuthError) Unwrap() error {
	return e.Err
}

// RemoteAPIError is returned for non-2xx answers, malformed bodies, timeouts,
// connection failures and requests rejected by the open circuit breaker.
// Status is zero when no HTTP response was received.
type RemoteAPIError struct {
	Err    error
	Method string
	Path   string
	Body   string
	Status int
}

func (e *RemoteAPIError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("reseller api %s %s: status %d: %v: %s", e.Method, e.Path, e.Status, e.Err, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("reseller api %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
	default:
		return fmt.Sprintf("reseller api %s %s: %v", e.Method, e.Path, e.Err)
	}
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *RemoteAPIError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request ran past the configured timeout
func (e *RemoteAPIError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "...(truncated)"
}
