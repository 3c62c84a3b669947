// Package transport sends signed, form-encoded requests to the search
// service. GET requests carry the parameters in the query string, POST
// requests in an application/x-www-form-urlencoded body.
package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/findyi/opensearch-go/internal/errors"
	"github.com/findyi/opensearch-go/internal/types"
	"github.com/rs/zerolog/log"
)

// Transport performs one HTTP exchange and returns the body of a 200
// response. Any other status is an *errors.HTTPError.
type Transport interface {
	Request(ctx context.Context, rawURL, method string, params url.Values) ([]byte, error)
}

// Names accepted by New.
const (
	NameNetHTTP = "nethttp"
	NameResty   = "resty"
)

// New returns the transport registered under name, built on hc.
func New(name string, hc *http.Client) (Transport, error) {
	switch strings.ToLower(name) {
	case "", NameNetHTTP:
		return NewNetHTTP(hc), nil
	case NameResty:
		return NewResty(hc), nil
	default:
		return nil, errors.Argumentf("unknown transport %q", name)
	}
}

// NetHTTP is the default transport, built on net/http.
type NetHTTP struct {
	client *http.Client
}

// NewNetHTTP wraps hc; a nil hc gets a client with a 30s timeout.
func NewNetHTTP(hc *http.Client) *NetHTTP {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &NetHTTP{client: hc}
}

func (t *NetHTTP) Request(ctx context.Context, rawURL, method string, params url.Values) ([]byte, error) {
	if err := types.ValidateMethod(method); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		body   io.Reader
		target = rawURL
	)
	encoded := params.Encode()
	if method == http.MethodGet {
		if encoded != "" {
			target = rawURL + "?" + encoded
		}
	} else {
		body = strings.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Argumentf("build request: %v", err)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	log.Debug().Str("transport", NameNetHTTP).Str("url", rawURL).Str("method", method).
		Strs("params", paramNames(params)).Msg("request")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError(method+" "+rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError(method+" "+rawURL, err)
	}
	log.Debug().Str("transport", NameNetHTTP).Int("status", resp.StatusCode).
		Int("bytes", len(respBody)).Msg("response")

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewHTTPError(resp.StatusCode, string(respBody), method+" "+rawURL)
	}
	return respBody, nil
}

// paramNames lists parameter names for logging; values may hold credentials.
func paramNames(params url.Values) []string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
