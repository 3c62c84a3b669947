package opensearch

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/findyi/opensearch-go/internal/transport"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestWithHTTPClientAndDebugLogging(t *testing.T) {
	// timeout option sets http timeout
	c := &Client{http: &http.Client{}}
	if err := WithHTTPTimeout(5 * time.Second)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.http.Timeout != 5*time.Second {
		t.Fatalf("http timeout not set")
	}

	// debug logging wraps the supplied client's transport
	var called bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header)}, nil
	})
	c2, err := New("http://example.com", "id", "secret",
		WithHTTPClient(&http.Client{Transport: rt}), WithHTTPTimeout(2*time.Second), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c2.Close() }()
	if _, ok := c2.http.Transport.(*debugTransport); !ok {
		t.Fatalf("expected debugTransport")
	}
	if c2.http.Timeout != 2*time.Second {
		t.Fatalf("timeout not applied to supplied client")
	}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", strings.NewReader(""))
	if _, err := c2.http.Do(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if !called {
		t.Fatalf("base transport not invoked")
	}
}

func TestWithDebugLogging_NoDoubleWrap(t *testing.T) {
	c := &Client{http: &http.Client{}}
	_ = WithDebugLogging(true)(c)
	_ = WithDebugLogging(true)(c)
	dt, ok := c.http.Transport.(*debugTransport)
	if !ok {
		t.Fatalf("expected debugTransport")
	}
	if _, nested := dt.base.(*debugTransport); nested {
		t.Fatalf("debug transport wrapped twice")
	}
}

func TestWithTransport(t *testing.T) {
	c, err := New("http://example.com", "id", "secret", WithRestyTransport())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close() }()
	if _, ok := c.requester.Transport.(*transport.Resty); !ok {
		t.Fatalf("expected resty transport, got %T", c.requester.Transport)
	}

	c2, err := New("http://example.com", "id", "secret", WithTransport("NetHTTP"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c2.Close() }()
	if _, ok := c2.requester.Transport.(*transport.NetHTTP); !ok {
		t.Fatalf("expected net/http transport, got %T", c2.requester.Transport)
	}
}

func TestWithExecutorConfig(t *testing.T) {
	c := &Client{}
	if err := WithExecutorConfig(ExecutorConfig{Shards: 2, QueueSize: 8})(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.execCfg == nil || c.execCfg.Shards != 2 || c.execCfg.QueueSize != 8 {
		t.Fatalf("executor config not stored: %+v", c.execCfg)
	}
}
