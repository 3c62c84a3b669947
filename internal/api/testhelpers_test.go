package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/findyi/opensearch-go/internal/shardqueue"
	"github.com/findyi/opensearch-go/internal/signature"
	"github.com/findyi/opensearch-go/internal/transport"
	"github.com/findyi/opensearch-go/internal/types"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// failingExec implements types.Executor and always fails Submit.
type failingExec struct{}

func (f *failingExec) Submit(ctx context.Context, shard string, job shardqueue.Job) error {
	return fmt.Errorf("submit failed")
}

// fakeCaller records every call and answers with a canned envelope body.
type fakeCaller struct {
	mu    sync.Mutex
	calls []recordedCall
	body  string
	err   error
}

type recordedCall struct {
	path   string
	method string
	params map[string]string
}

func (f *fakeCaller) Call(ctx context.Context, path, method string, params map[string]string) (*types.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	cp := make(map[string]string, len(params))
	for k, v := range params {
		cp[k] = v
	}
	f.calls = append(f.calls, recordedCall{path: path, method: method, params: cp})
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	body := f.body
	if body == "" {
		body = `{"status":"OK","request_id":"r-1","result":{}}`
	}
	env, err := types.ParseEnvelope([]byte(body))
	if err != nil {
		return nil, err
	}
	return env, env.Err()
}

func (f *fakeCaller) last(t *testing.T) recordedCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		t.Fatalf("no calls recorded")
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeCaller) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

const (
	testKeyID  = "testid"
	testSecret = "testsecret"
)

var fixedNow = time.Date(2015, 6, 1, 8, 0, 0, 0, time.UTC)

// signingServer verifies the request signature the way the service does and
// replies with body. The parsed params of the last request are sent on the
// returned channel.
func signingServer(t *testing.T, body string) (*httptest.Server, <-chan map[string]string) {
	t.Helper()
	seen := make(chan map[string]string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		params := map[string]string{}
		for k := range r.Form {
			params[k] = r.Form.Get(k)
		}
		got := params[signature.Param]
		verify := make(map[string]string, len(params))
		for k, v := range params {
			verify[k] = v
		}
		want, err := signature.Sign(testSecret, r.Method, verify)
		if err != nil || got != want {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"FAIL","errors":{"code":"4003","message":"signature mismatch"}}`))
			return
		}
		select {
		case seen <- params:
		default:
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func newRequester(host string, tr transport.Transport) *Requester {
	return &Requester{
		Host:            host,
		AccessKeyID:     testKeyID,
		AccessKeySecret: testSecret,
		Transport:       tr,
		Now:             func() time.Time { return fixedNow },
	}
}
