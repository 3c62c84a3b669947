package transport

import (
	"context"
	"net/http"
	"net/url"

	"github.com/findyi/opensearch-go/internal/errors"
	"github.com/findyi/opensearch-go/internal/types"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Resty is a transport built on go-resty.
type Resty struct {
	client *resty.Client
}

// NewResty wraps hc in a resty client; a nil hc uses resty's defaults.
func NewResty(hc *http.Client) *Resty {
	var c *resty.Client
	if hc != nil {
		c = resty.NewWithClient(hc)
	} else {
		c = resty.New()
	}
	return &Resty{client: c}
}

func (t *Resty) Request(ctx context.Context, rawURL, method string, params url.Values) ([]byte, error) {
	if err := types.ValidateMethod(method); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := t.client.R().SetContext(ctx)
	log.Debug().Str("transport", NameResty).Str("url", rawURL).Str("method", method).
		Strs("params", paramNames(params)).Msg("request")

	var (
		resp *resty.Response
		err  error
	)
	if method == http.MethodGet {
		resp, err = req.SetQueryParamsFromValues(params).Get(rawURL)
	} else {
		resp, err = req.SetFormDataFromValues(params).Post(rawURL)
	}
	if err != nil {
		return nil, errors.NewNetworkError(method+" "+rawURL, err)
	}
	log.Debug().Str("transport", NameResty).Int("status", resp.StatusCode()).
		Int("bytes", len(resp.Body())).Msg("response")

	if resp.StatusCode() != http.StatusOK {
		return nil, errors.NewHTTPError(resp.StatusCode(), resp.String(), method+" "+rawURL)
	}
	return resp.Body(), nil
}
