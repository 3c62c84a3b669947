package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/findyi/opensearch-go/internal/signature"
	"github.com/findyi/opensearch-go/internal/transport"
	"github.com/findyi/opensearch-go/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Common parameter values sent with every request.
const (
	APIVersion       = "v2"
	SignatureMethod  = "HMAC-SHA1"
	SignatureVersion = "1.0"
	TimestampFormat  = "2006-01-02T15:04:05Z"
)

// Requester signs requests with the account credentials and sends them over
// a Transport. It implements types.Caller and is safe for concurrent use.
type Requester struct {
	Host            string
	AccessKeyID     string
	AccessKeySecret string
	Transport       transport.Transport

	// Now defaults to time.Now.
	Now func() time.Time
}

// CommonParams returns the parameters shared by every request, with an
// empty Signature placeholder.
func CommonParams(accessKeyID string, now time.Time) map[string]string {
	now = now.UTC()
	return map[string]string{
		"Version":          APIVersion,
		"AccessKeyId":      accessKeyID,
		"Signature":        "",
		"SignatureMethod":  SignatureMethod,
		"Timestamp":        now.Truncate(time.Second).Format(TimestampFormat),
		"SignatureVersion": SignatureVersion,
		"SignatureNonce":   strconv.FormatInt(now.UnixMicro(), 10),
	}
}

// Call merges params over the common parameters, signs them, sends the
// request and parses the envelope. A non-OK envelope is returned together
// with its *errors.APIError.
func (r *Requester) Call(ctx context.Context, path, method string, params map[string]string) (*types.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateMethod(method); err != nil {
		return nil, err
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	req := CommonParams(r.AccessKeyID, now())
	for k, v := range params {
		req[k] = v
	}

	sig, err := signature.Sign(r.AccessKeySecret, method, req)
	if err != nil {
		return nil, err
	}
	req[signature.Param] = sig

	values := make(url.Values, len(req))
	for k, v := range req {
		values.Set(k, v)
	}

	clientID := uuid.NewString()
	start := time.Now()
	body, err := r.Transport.Request(ctx, strings.TrimRight(r.Host, "/")+path, method, values)
	requestDuration.WithLabelValues(routeLabel(path), method).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(routeLabel(path), outcomeHTTPError).Inc()
		log.Debug().Err(err).Str("client_request_id", clientID).Str("path", path).Msg("request failed")
		return nil, err
	}

	env, err := types.ParseEnvelope(body)
	if err != nil {
		requestsTotal.WithLabelValues(routeLabel(path), outcomeDecodeError).Inc()
		return nil, err
	}
	if err := env.Err(); err != nil {
		requestsTotal.WithLabelValues(routeLabel(path), outcomeAPIError).Inc()
		apiErrorsTotal.WithLabelValues(env.ErrorCode()).Inc()
		log.Debug().Str("client_request_id", clientID).Str("request_id", env.RequestID).
			Str("code", env.ErrorCode()).Str("message", env.ErrorMessage()).Msg("api error")
		return env, err
	}
	requestsTotal.WithLabelValues(routeLabel(path), outcomeOK).Inc()
	log.Debug().Str("client_request_id", clientID).Str("request_id", env.RequestID).
		Str("path", path).Dur("elapsed", time.Since(start)).Msg("request completed")
	return env, nil
}

// resourcePath joins a path prefix and an escaped application name.
func resourcePath(prefix, app string) string {
	return prefix + "/" + url.PathEscape(app)
}

// setIfNotEmpty adds key only when value is non-empty.
func setIfNotEmpty(params map[string]string, key, value string) {
	if value != "" {
		params[key] = value
	}
}
