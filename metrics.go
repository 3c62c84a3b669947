package opensearch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pushesEnqueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opensearch_client",
			Name:      "documents_enqueued_total",
			Help:      "Document items accepted into the shard executor.",
		},
		[]string{"shard"},
	)

	pushesFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "opensearch_client",
			Name:      "push_failures_total",
			Help:      "Async pushes whose job returned error or panic after retries.",
		},
	)
)
