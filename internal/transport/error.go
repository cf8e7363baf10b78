package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Error is returned for every failed backend exchange: network failure,
// timeout, non-2xx status or a 2xx body that cannot be decoded.
type Error struct {
	Method     string
	Path       string
	StatusCode int    // 0 when no response was received
	Body       []byte // raw response body, never interpreted
	Cause      error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.Path, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the exchange failed because a deadline was exceeded
func (e *Error) Timeout() bool {
	if errors.Is(e.Cause, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Cause, &netErr) && netErr.Timeout()
}

// ErrUnexpectedStatus is the cause attached to non-2xx responses
var ErrUnexpectedStatus = errors.New("unexpected status")

// AsError extracts a *Error from err's chain
func AsError(err error) (*Error, bool) {
	var transportErr *Error
	if errors.As(err, &transportErr) {
		return transportErr, true
	}
	return nil, false
}
