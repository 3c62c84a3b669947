package opensearch

import (
	stderrors "errors"

	"github.com/findyi/opensearch-go/internal/errors"
	"github.com/findyi/opensearch-go/internal/shardqueue"
)

// Sentinels for errors.Is. Every typed error below matches its sentinel.
var (
	ErrArgument = errors.ErrArgument
	ErrQuery    = errors.ErrQuery
	ErrHTTP     = errors.ErrHTTP
	ErrAPI      = errors.ErrAPI

	// ErrBackPressure is returned by PushAsync when the shard queue is full.
	ErrBackPressure = shardqueue.ErrQueueFull
	// ErrClosed is returned by PushAsync after Close.
	ErrClosed = shardqueue.ErrExecutorClosed
)

type (
	ArgumentError = errors.ArgumentError
	QueryError    = errors.QueryError
	HTTPError     = errors.HTTPError
	APIError      = errors.APIError
)

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return stderrors.Is(err, ErrBackPressure) }

// IsRecoverable reports whether err is a transport failure worth retrying.
func IsRecoverable(err error) bool { return errors.IsRecoverable(err) }
