package tsbx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyTag is returned by Ensure when no identity tag is given.
var ErrEmptyTag = errors.New("tsbx: identity tag must not be empty")

// ConfigurationError reports a malformed endpoint or token at client construction.
// Retrying does not help.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tsbx: invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// TransportError reports that a request could not be sent or its response
// could not be read.
type TransportError struct {
	Op      string
	Subject string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("tsbx: %s%s: %v", e.Op, subject(e.Subject), e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError reports a non-2xx response. Body is the raw response body.
type RemoteError struct {
	Op         string
	Subject    string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("tsbx: %s%s: API returned %d %s (body: %s)",
		e.Op, subject(e.Subject), e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// DecodeError reports a 2xx response whose body does not have the expected shape.
type DecodeError struct {
	Op      string
	Subject string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tsbx: %s%s: failed to decode response: %v", e.Op, subject(e.Subject), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func subject(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", s)
}

// IsRetryable reports whether err is worth another attempt.
// Transport failures and 429/5xx responses are; cancellation by the caller,
// other remote rejections, decode and configuration errors are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return true
	}

	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == http.StatusTooManyRequests || remoteErr.StatusCode >= 500
	}
	return false
}

// IsConflict reports whether err is a 409 from the provisioning service,
// which is how a service enforcing tag uniqueness rejects a duplicate.
func IsConflict(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusConflict
}
