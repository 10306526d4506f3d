package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "api_http_requests_total", Help: "HTTP requests"},
		[]string{"method", "route", "status"},
	)
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CatalogRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "catalog_rejections_total", Help: "Mutations rejected by validation"},
		[]string{"operation", "reason"},
	)
	CatalogMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "catalog_mutations_total", Help: "Mutations committed"},
		[]string{"operation"},
	)

	LifecycleEventsPublished = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "lifecycle_events_published_total", Help: "Campaign lifecycle events published"},
	)
	LifecycleEventsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "lifecycle_events_failed_total", Help: "Campaign lifecycle events that could not be published"},
	)

	WorkerEventsConsumed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "worker_events_consumed_total", Help: "Lifecycle events consumed by the audit worker"},
	)
)

func init() {
	prometheus.MustRegister(
		APIRequestsTotal, APIRequestDuration,
		CatalogRejections, CatalogMutations,
		LifecycleEventsPublished, LifecycleEventsFailed,
		WorkerEventsConsumed,
	)
}

func Handler() http.Handler { return promhttp.Handler() }
