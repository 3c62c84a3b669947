// Package errors defines the error kinds surfaced by the SDK and the
// classification used by the async push retry policy.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrArgument = stderrors.New("invalid argument")
	ErrQuery    = stderrors.New("invalid query")
	ErrHTTP     = stderrors.New("http request failed")
	ErrAPI      = stderrors.New("api response not OK")
)

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors should be retried with exponential backoff.
	// Examples: 500 Internal Server Error, network timeouts, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors should fail immediately without retry.
	// Examples: 401 Unauthorized, 403 Forbidden, 400 Bad Request.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ArgumentError reports invalid caller input: wrong type, unsupported
// operator, missing required field.
type ArgumentError struct {
	Msg string
}

// Argumentf builds an ArgumentError from a format string.
func Argumentf(format string, args ...any) *ArgumentError {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ArgumentError) Error() string { return "argument error: " + e.Msg }

func (e *ArgumentError) Is(target error) bool { return target == ErrArgument }

// QueryError reports a query statement that cannot be built.
type QueryError struct {
	Msg string
}

func (e *QueryError) Error() string { return "query error: " + e.Msg }

func (e *QueryError) Is(target error) bool { return target == ErrQuery }

// HTTPError wraps a transport failure with categorization metadata for
// retry policies.
type HTTPError struct {
	Category   ErrorCategory
	StatusCode int    // HTTP status code (0 for network errors)
	Body       string // Response body for debugging
	Underlying error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v body: %s", e.Category, e.StatusCode, e.Underlying, e.Body)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *HTTPError) Unwrap() error {
	return e.Underlying
}

func (e *HTTPError) Is(target error) bool { return target == ErrHTTP }

// APIError is returned when the service envelope status is not OK.
type APIError struct {
	Code      string
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api response code: %s message: %s", e.Code, e.Message)
}

func (e *APIError) Is(target error) bool { return target == ErrAPI }

// IsIrrecoverable returns true if the error should not be retried.
// Argument, query and API errors never succeed on retry.
func IsIrrecoverable(err error) bool {
	var he *HTTPError
	if stderrors.As(err, &he) {
		return he.Category == Irrecoverable
	}
	return stderrors.Is(err, ErrArgument) || stderrors.Is(err, ErrQuery) || stderrors.Is(err, ErrAPI)
}

// IsRecoverable reports whether err is an HTTPError worth retrying.
func IsRecoverable(err error) bool {
	var he *HTTPError
	return stderrors.As(err, &he) && he.Category == Recoverable
}
