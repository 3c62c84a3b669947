package errors

import (
	"fmt"
	"net/http"
)

// ClassifyHTTPError wraps a non-200 response. Timeouts, throttling and 5xx
// are Recoverable; every other 4xx is Irrecoverable. Status codes outside
// 4xx/5xx are treated as Recoverable.
func ClassifyHTTPError(statusCode int, body string, underlying error) *HTTPError {
	return &HTTPError{
		Category:   categoryForStatus(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Underlying: underlying,
	}
}

func categoryForStatus(code int) ErrorCategory {
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
		return Recoverable
	}
	if code >= 400 && code < 500 {
		return Irrecoverable
	}
	return Recoverable
}

// NewHTTPError builds the error for a response to operation (e.g.
// "POST http://host/index/app") that did not return 200.
func NewHTTPError(statusCode int, body string, operation string) *HTTPError {
	return ClassifyHTTPError(statusCode, body, fmt.Errorf("%s: unexpected http status %d", operation, statusCode))
}

// NewNetworkError wraps a failure to obtain any response. It is always
// Recoverable and carries status 0.
func NewNetworkError(operation string, err error) *HTTPError {
	return &HTTPError{
		Category:   Recoverable,
		Underlying: fmt.Errorf("%s: %w", operation, err),
	}
}
