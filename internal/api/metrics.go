package api

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK          = "ok"
	outcomeHTTPError   = "http_error"
	outcomeAPIError    = "api_error"
	outcomeDecodeError = "decode_error"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opensearch_client",
			Name:      "requests_total",
			Help:      "API requests by route and outcome.",
		},
		[]string{"route", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "opensearch_client",
			Name:      "request_duration_seconds",
			Help:      "Transport latency of API requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	apiErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opensearch_client",
			Name:      "api_errors_total",
			Help:      "Envelopes with a non-OK status, by service error code.",
		},
		[]string{"code"},
	)
)

// routeLabel drops the application name so label cardinality stays fixed.
func routeLabel(path string) string {
	for _, prefix := range []string{pathDocument, pathErrorLog, pathApp, pathSearch, pathSuggest} {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return prefix
		}
	}
	return "other"
}
