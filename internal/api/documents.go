package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/findyi/opensearch-go/internal/errors"
	"github.com/findyi/opensearch-go/internal/job"
	"github.com/findyi/opensearch-go/internal/types"
)

// PushDocuments sends a batch of document operations to table of app.
func PushDocuments(ctx context.Context, c types.Caller, app, table string, items []types.DocumentItem) (json.RawMessage, error) {
	params, err := pushParams(app, table, items)
	if err != nil {
		return nil, err
	}
	return callRaw(ctx, c, resourcePath(pathDocument, app), http.MethodPost, params)
}

// PushDocumentsAsync validates and encodes the batch, then submits the push
// to the executor keyed by app/table so pushes to one table keep their
// order. The push runs detached from ctx cancellation.
func PushDocumentsAsync(ctx context.Context, exec types.Executor, c types.Caller, app, table string, items []types.DocumentItem) (*types.EnqueueAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	params, err := pushParams(app, table, items)
	if err != nil {
		return nil, err
	}
	path := resourcePath(pathDocument, app)

	key := job.Key(app, table)
	pushJob := job.Push(key, len(items), func(jobCtx context.Context) error {
		_, err := c.Call(jobCtx, path, http.MethodPost, params)
		return err
	})

	if err := exec.Submit(context.WithoutCancel(ctx), key, pushJob); err != nil {
		return nil, err
	}
	return &types.EnqueueAck{App: app, Table: table, Items: len(items), Status: "enqueued"}, nil
}

func pushParams(app, table string, items []types.DocumentItem) (map[string]string, error) {
	if err := types.ValidateAppName(app); err != nil {
		return nil, err
	}
	if table == "" {
		return nil, errors.Argumentf("table name is required")
	}
	if len(items) == 0 {
		return nil, errors.Argumentf("please call add() or update() or delete() first.")
	}
	for _, item := range items {
		if err := types.ValidateDocumentFields(item.Fields); err != nil {
			return nil, err
		}
	}
	encoded, err := encodeItems(items)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"action":     "push",
		"table_name": table,
		"items":      encoded,
	}, nil
}

// encodeItems renders items as JSON without HTML escaping, keeping
// non-ASCII text as is.
func encodeItems(items []types.DocumentItem) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return "", errors.Argumentf("encode items: %v", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
