// Package opensearch is a client SDK for the hosted search service API:
// application lifecycle, document push, search, suggestion and error log.
// Requests are signed with HMAC-SHA1 using the account access key.
package opensearch

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/findyi/opensearch-go/internal/api"
	"github.com/findyi/opensearch-go/internal/job"
	"github.com/findyi/opensearch-go/internal/transport"
	"github.com/findyi/opensearch-go/query"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is safe for concurrent use. Call Close to stop the async push
// executor.
type Client struct {
	host          string
	http          *http.Client
	transportName string
	now           func() time.Time
	execCfg       *ExecutorConfig

	requester *api.Requester
	exec      executor

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the API endpoint host (e.g.
// "http://opensearch-cn-hangzhou.aliyuncs.com") and the account access key.
func New(host, accessKeyID, accessKeySecret string, opts ...Option) (*Client, error) {
	cfg := Config{APIHost: host, AccessKeyID: accessKeyID, AccessKeySecret: accessKeySecret}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		host: host,
		http: &http.Client{Timeout: 30 * time.Second},
		now:  time.Now,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	tr, err := transport.New(c.transportName, c.http)
	if err != nil {
		return nil, err
	}
	c.requester = &api.Requester{
		Host:            host,
		AccessKeyID:     accessKeyID,
		AccessKeySecret: accessKeySecret,
		Transport:       tr,
		Now:             c.now,
	}

	if c.exec == nil {
		exec, err := newDefaultExecutor(c.execCfg)
		if err != nil {
			return nil, err
		}
		c.exec = exec
	}
	return c, nil
}

// Close stops the background executor after draining queued pushes. Safe
// to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	return nil
}

// AwaitConsistency blocks until every push enqueued by PushAsync for
// app/table before the call has been executed.
func (c *Client) AwaitConsistency(ctx context.Context, app, table string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.exec.Barrier(ctx, job.Key(app, table))
}

// --------------------------------------------------------------------
// Application operations - delegated to internal/api
// --------------------------------------------------------------------

// App is a handle on one application.
type App struct {
	c    *Client
	name string
}

// App returns a handle on application name. No request is made.
func (c *Client) App(name string) *App {
	return &App{c: c, name: name}
}

// Name returns the application name.
func (a *App) Name() string { return a.name }

// Create creates the application from template.
func (a *App) Create(ctx context.Context, template string) (json.RawMessage, error) {
	return api.CreateApp(ctx, a.c.requester, a.name, template)
}

// Delete deletes the application.
func (a *App) Delete(ctx context.Context) (json.RawMessage, error) {
	return api.DeleteApp(ctx, a.c.requester, a.name)
}

// Info returns the application status.
func (a *App) Info(ctx context.Context) (json.RawMessage, error) {
	return api.AppInfo(ctx, a.c.requester, a.name)
}

// Reindex starts a rebuild of the application index.
func (a *App) Reindex(ctx context.Context) (json.RawMessage, error) {
	return api.Reindex(ctx, a.c.requester, a.name)
}

// ReindexImport starts a rebuild that re-imports tables from their data
// sources.
func (a *App) ReindexImport(ctx context.Context, tables ...string) (json.RawMessage, error) {
	return api.ReindexImport(ctx, a.c.requester, a.name, tables)
}

// ErrorLog returns one page of the application error log.
func (a *App) ErrorLog(ctx context.Context, req ErrorLogRequest) (json.RawMessage, error) {
	return api.ErrorLog(ctx, a.c.requester, a.name, req)
}

// Suggest returns suggestions for text from the suggestion rule
// suggestName.
func (a *App) Suggest(ctx context.Context, text, suggestName string, opts SuggestOptions) (*SuggestResult, error) {
	return api.Suggest(ctx, a.c.requester, a.name, text, suggestName, opts)
}

// Search runs q against the application. opts.IndexNames, when set,
// searches those applications instead.
func (a *App) Search(ctx context.Context, q query.Builder, opts SearchOptions) (*SearchResult, error) {
	return api.Search(ctx, a.c.requester, a.name, q, opts)
}

// ListApps returns one page of the account's applications.
func (c *Client) ListApps(ctx context.Context, page, pageSize int) (json.RawMessage, error) {
	return api.ListApps(ctx, c.requester, page, pageSize)
}

// --------------------------------------------------------------------
// Search operations - delegated to internal/api
// --------------------------------------------------------------------

// Search runs q against app.
func (c *Client) Search(ctx context.Context, app string, q query.Builder, opts SearchOptions) (*SearchResult, error) {
	return api.Search(ctx, c.requester, app, q, opts)
}

// SearchRaw runs q against app and returns the undecoded result, for
// config formats other than json.
func (c *Client) SearchRaw(ctx context.Context, app string, q query.Builder, opts SearchOptions) (json.RawMessage, error) {
	return api.SearchRaw(ctx, c.requester, app, q, opts)
}

// Suggest returns suggestions for text from suggestName of app.
func (c *Client) Suggest(ctx context.Context, app, text, suggestName string, opts SuggestOptions) (*SuggestResult, error) {
	return api.Suggest(ctx, c.requester, app, text, suggestName, opts)
}

// ErrorLog returns one page of the error log of app.
func (c *Client) ErrorLog(ctx context.Context, app string, req ErrorLogRequest) (json.RawMessage, error) {
	return api.ErrorLog(ctx, c.requester, app, req)
}

// Call sends a signed request to path and returns the parsed envelope, for
// endpoints without a dedicated method. A non-OK envelope is returned with
// its *APIError.
func (c *Client) Call(ctx context.Context, path, method string, params map[string]string) (*Envelope, error) {
	return c.requester.Call(ctx, path, method, params)
}
