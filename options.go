package opensearch

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/findyi/opensearch-go/internal/transport"
)

// Option configures a Client during construction in New.
//
// Options run in order before the transport is built, so WithHTTPClient
// followed by WithDebugLogging wraps the supplied client's transport.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout bounds
// the total time spent on a single HTTP request. The value must be greater
// than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the http.Client used by the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Request dumps include the signed
// parameters, so do not enable it in production.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			if _, ok := c.http.Transport.(*debugTransport); !ok {
				c.http.Transport = &debugTransport{base: c.http.Transport}
			}
		}
		return nil
	}
}

// WithTransport selects the HTTP transport by name: "nethttp" (default) or
// "resty".
func WithTransport(name string) Option {
	return func(c *Client) error {
		switch strings.ToLower(name) {
		case "", transport.NameNetHTTP, transport.NameResty:
			c.transportName = strings.ToLower(name)
			return nil
		}
		return fmt.Errorf("unknown transport %q", name)
	}
}

// WithRestyTransport is shorthand for WithTransport("resty").
func WithRestyTransport() Option {
	return WithTransport(transport.NameResty)
}

// WithClock overrides the time source used for Timestamp and
// SignatureNonce.
func WithClock(now func() time.Time) Option {
	return func(c *Client) error {
		if now == nil {
			return fmt.Errorf("clock must not be nil")
		}
		c.now = now
		return nil
	}
}

// WithExecutorConfig sets the shard executor tunables used by PushAsync.
// Zero fields fall back to defaults.
func WithExecutorConfig(cfg ExecutorConfig) Option {
	return func(c *Client) error {
		c.execCfg = &cfg
		return nil
	}
}
