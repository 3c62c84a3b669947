package opensearch

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/findyi/opensearch-go/internal/api"
	"github.com/findyi/opensearch-go/internal/job"
	"github.com/findyi/opensearch-go/internal/types"
)

// Documents accumulates add/update/delete operations for one table and
// pushes them as a single batch. It is safe for concurrent use.
type Documents struct {
	c     *Client
	app   string
	table string

	mu    sync.Mutex
	items []DocumentItem
}

// Documents returns an empty batch for table of app.
func (c *Client) Documents(app, table string) *Documents {
	return &Documents{c: c, app: app, table: table}
}

// ItemOption tunes a single batch entry.
type ItemOption func(*DocumentItem)

// WithTimestamp sets the document update time sent with the entry.
func WithTimestamp(ts int64) ItemOption {
	return func(it *DocumentItem) { it.Timestamp = &ts }
}

// Add queues an add of fields, which must contain a non-nil "id".
func (d *Documents) Add(fields map[string]any, opts ...ItemOption) error {
	return d.op(CmdAdd, fields, opts)
}

// Update queues an update of fields.
func (d *Documents) Update(fields map[string]any, opts ...ItemOption) error {
	return d.op(CmdUpdate, fields, opts)
}

// Delete queues a delete; fields may hold only the "id".
func (d *Documents) Delete(fields map[string]any, opts ...ItemOption) error {
	return d.op(CmdDelete, fields, opts)
}

func (d *Documents) op(cmd string, fields map[string]any, opts []ItemOption) error {
	if err := types.ValidateDocumentFields(fields); err != nil {
		return err
	}
	item := DocumentItem{Cmd: cmd, Fields: fields}
	for _, opt := range opts {
		opt(&item)
	}
	d.mu.Lock()
	d.items = append(d.items, item)
	d.mu.Unlock()
	return nil
}

// Len returns the number of queued operations.
func (d *Documents) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Items returns a copy of the queued operations.
func (d *Documents) Items() []DocumentItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DocumentItem(nil), d.items...)
}

// Push sends the queued operations. The batch is cleared only when the
// service accepts it, so a failed Push can be retried.
func (d *Documents) Push(ctx context.Context) (json.RawMessage, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	res, err := api.PushDocuments(ctx, d.c.requester, d.app, d.table, d.items)
	if err != nil {
		return nil, err
	}
	d.items = nil
	return res, nil
}

// PushAsync hands the queued operations to the background executor and
// clears the batch. Pushes for the same app/table run in submission order
// and are retried on transport errors; use Client.AwaitConsistency to wait
// for them.
func (d *Documents) PushAsync(ctx context.Context) (*EnqueueAck, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ack, err := api.PushDocumentsAsync(ctx, d.c.exec, d.c.requester, d.app, d.table, d.items)
	if err != nil {
		return nil, err
	}
	pushesEnqueuedTotal.WithLabelValues(job.ShardLabel(job.Key(d.app, d.table))).Add(float64(ack.Items))
	d.items = nil
	return ack, nil
}
