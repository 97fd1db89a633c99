package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultTooBig  = "too_large"
	ResultInvalid = "invalid"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_http_requests_total",
			Help: "HTTP requests served, by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ingestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_ingest_total",
			Help: "Inbound files processed, by category and result.",
		},
		[]string{"category", "result"},
	)

	downloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_downloads_total",
			Help: "Download proxy requests, by result.",
		},
		[]string{"result"},
	)

	dispatchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_dispatch_attempts_total",
			Help: "Send-to-chat dispatch attempts, by method kind and result.",
		},
		[]string{"kind", "result"},
	)

	resolveCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_resolve_cache_total",
			Help: "Resolved file path cache lookups, by outcome.",
		},
		[]string{"outcome"},
	)
)

// ObserveHTTP records one served request.
func ObserveHTTP(method, path, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// IncIngest counts an ingest outcome. Category is empty when the payload was not recognized.
func IncIngest(category, result string) {
	if category == "" {
		category = "unknown"
	}
	ingestTotal.WithLabelValues(category, result).Inc()
}

// IncDownload counts a download outcome.
func IncDownload(result string) {
	downloadsTotal.WithLabelValues(result).Inc()
}

// IncDispatchAttempt counts one relay dispatch attempt.
func IncDispatchAttempt(kind, result string) {
	dispatchAttemptsTotal.WithLabelValues(kind, result).Inc()
}

// IncResolveCache counts a resolve cache hit or miss.
func IncResolveCache(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	resolveCacheTotal.WithLabelValues(outcome).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
