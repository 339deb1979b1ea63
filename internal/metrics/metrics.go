package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint", "status"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"method", "endpoint"},
	)

	listingPagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_listing_pages_total",
			Help: "Listing pages served, by listing and window",
		},
		[]string{"listing", "when"},
	)

	listingEmptyPagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_listing_empty_pages_total",
			Help: "Listing pages served with no items",
		},
		[]string{"listing"},
	)

	dependencyHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_health",
			Help: "Health status of dependencies (1 = healthy, 0 = unhealthy)",
		},
		[]string{"dependency"},
	)
)

func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration, responseSize int) {
	status := strconv.Itoa(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
	httpResponseSize.WithLabelValues(method, endpoint).Observe(float64(responseSize))
}

// RecordListing counts one served page. when is "" for listings without a
// time window.
func RecordListing(listing, when string, items int) {
	if when == "" {
		when = "all"
	}
	listingPagesTotal.WithLabelValues(listing, when).Inc()
	if items == 0 {
		listingEmptyPagesTotal.WithLabelValues(listing).Inc()
	}
}

func SetDependencyHealth(dependency string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	dependencyHealth.WithLabelValues(dependency).Set(value)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
