// {{RIPER-5-Enhanced:
//   Action: "Added"
//   Task_ID: "Prometheus Metrics"
//   Timestamp: "2025-11-27T12:20:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Identified request, record lifecycle and query interpretation signals"
//   Principle_Applied: "Aether-Engineering-Observability"
//   Quality_Check: "Bounded label cardinality (route templates, fixed outcomes)"
// }}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "string_analyzer"

var (
	// HTTPRequests counts handled requests.
	// Labels: method, route (gin route template), status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests handled",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration measures request latency.
	// Labels: method, route
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// NLQueries counts natural-language filter requests.
	// Labels: outcome (parsed, unparseable, conflicting)
	NLQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "nl_queries_total",
		Help:      "Natural-language filter queries by outcome",
	}, []string{"outcome"})

	RecordsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Strings analyzed and stored",
	})

	RecordsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_deleted_total",
		Help:      "Strings deleted",
	})
)
