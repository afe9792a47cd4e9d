package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable matches failures where the server could not be reached
	// or reported itself unavailable.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized matches 401/403 responses and expired sessions.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRefreshFailed is the cause recorded when the token exchange fails.
	ErrRefreshFailed = errors.New("token refresh failed")
)

// NetworkError is returned when no response was received.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrUnavailable }

// HTTPError is a non-2xx response that survived any retry. Detail is the
// backend's "detail" message when the body carried one.
type HTTPError struct {
	Status int
	Detail string
	Body   []byte
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("http %d: %s", e.Status, http.StatusText(e.Status))
}

func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrUnavailable:
		return e.Status == http.StatusBadGateway || e.Status == http.StatusServiceUnavailable ||
			e.Status == http.StatusGatewayTimeout
	}
	return false
}

// AuthExpiredError is a 401 that could not be recovered. Credentials have
// already been cleared when it is returned. Cause is the refresh failure,
// if a refresh was attempted.
type AuthExpiredError struct {
	Response *HTTPError
	Cause    error
}

func (e *AuthExpiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("session expired: %v", e.Cause)
	}
	return "session expired"
}

func (e *AuthExpiredError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Response != nil {
		errs = append(errs, e.Response)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func (e *AuthExpiredError) Is(target error) bool { return target == ErrUnauthorized }

// DecodeError is a 2xx response whose body is not the expected JSON.
type DecodeError struct {
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response (http %d): %v", e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
