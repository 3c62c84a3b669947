package types

import (
	"context"
	"net/http"

	"github.com/findyi/opensearch-go/internal/errors"
	"github.com/findyi/opensearch-go/internal/shardqueue"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// Executor interface for dependency injection (used by async operations)
type Executor interface {
	Submit(context.Context, string, shardqueue.Job) error
}

// Caller sends one signed API request and returns the parsed envelope.
// Implementations must not modify params.
type Caller interface {
	Call(ctx context.Context, path, method string, params map[string]string) (*Envelope, error)
}

// ------------------------------
// Validation
// ------------------------------

// ValidateMethod accepts GET and POST only.
func ValidateMethod(method string) error {
	if method != http.MethodGet && method != http.MethodPost {
		return errors.Argumentf("method must be 'POST' or 'GET', got %q", method)
	}
	return nil
}

// ValidateAppName rejects empty application names.
func ValidateAppName(name string) error {
	if name == "" {
		return errors.Argumentf("app name is required")
	}
	return nil
}

// ValidatePage checks list pagination arguments.
func ValidatePage(page, pageSize int) error {
	if page < 1 {
		return errors.Argumentf("page must be >= 1, got %d", page)
	}
	if pageSize < 1 {
		return errors.Argumentf("page_size must be >= 1, got %d", pageSize)
	}
	return nil
}

// ValidateDocumentFields requires a non-nil "id" field.
func ValidateDocumentFields(fields map[string]any) error {
	if fields == nil {
		return errors.Argumentf("fields is required")
	}
	if id, ok := fields["id"]; !ok || id == nil {
		return errors.Argumentf("fields must contain 'id' key and it must be not nil")
	}
	return nil
}
