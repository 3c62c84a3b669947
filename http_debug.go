package opensearch

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport provides detailed HTTP request/response logging for
// debugging client issues.
//
// Purpose:
//   - Troubleshoot signature mismatches by inspecting the exact signed
//     query string or form body
//   - Inspect raw envelopes when a result fails to decode
//
// When to use:
//   - Set OPENSEARCH_DEBUG=true or DEBUG=true environment variable
//   - Pass WithDebugLogging(true) to New
//
// Security considerations:
//   - Dumps include AccessKeyId, Signature and document payloads
//   - Only enable in development/staging environments
//
// Example usage:
//
//	export OPENSEARCH_DEBUG=true
//	go run main.go  # Client will now log all HTTP traffic
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.Redacted()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.Redacted()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("method", req.Method).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether OPENSEARCH_DEBUG or DEBUG is set to
// "true" (case-sensitive).
func debugLoggingRequested() bool {
	return os.Getenv("OPENSEARCH_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
