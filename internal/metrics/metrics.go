// Package metrics содержит метрики Prometheus сервиса редиректов.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedirectsTotal считает редиректы по исходу разрешения кода
	RedirectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linktrack_redirects_total",
			Help: "Total number of short code resolutions by outcome",
		},
		[]string{"outcome"},
	)

	ClicksRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "linktrack_clicks_recorded_total",
			Help: "Total number of persisted click records",
		},
	)

	// ClickRecordFailuresTotal считает потерянные записи о переходах
	ClickRecordFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linktrack_click_record_failures_total",
			Help: "Total number of click records that could not be persisted",
		},
		[]string{"reason"}, // "storage", "breaker_open", "panic"
	)

	// BreakerState: 0 closed, 1 half-open, 2 open
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "linktrack_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "linktrack_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "linktrack_link_cache_hits_total",
			Help: "Total number of short link cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "linktrack_link_cache_misses_total",
			Help: "Total number of short link cache misses",
		},
	)
)

// RecordHTTPRequest записывает длительность обработки HTTP-запроса
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
