package opensearch

import (
	"github.com/findyi/opensearch-go/internal/shardqueue"
	"github.com/findyi/opensearch-go/internal/types"
)

// Public type aliases so SDK consumers can import only the root package and
// query.
type (
	// Requests
	SearchOptions   = types.SearchOptions
	SuggestOptions  = types.SuggestOptions
	ErrorLogRequest = types.ErrorLogRequest
	SearchSummary   = types.SearchSummary

	// Domain entities
	DocumentItem = types.DocumentItem
	Envelope     = types.Envelope

	// Responses
	EnqueueAck    = types.EnqueueAck
	SearchResult  = types.SearchResult
	Suggestion    = types.Suggestion
	SuggestResult = types.SuggestResult

	// ExecutorConfig tunes the PushAsync executor.
	ExecutorConfig = shardqueue.Config
)

// Document push commands.
const (
	CmdAdd    = types.CmdAdd
	CmdUpdate = types.CmdUpdate
	CmdDelete = types.CmdDelete
)

// ParseEnvelope decodes a raw API response body.
func ParseEnvelope(body []byte) (*Envelope, error) { return types.ParseEnvelope(body) }
