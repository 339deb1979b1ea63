package middleware

import (
	"net/http"
	"time"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/metrics"
)

// Metrics records request count, latency and response size per route.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(sw, r)

		metrics.RecordHTTPRequest(r.Method, routePattern(r), sw.code(), time.Since(start), sw.bytes)
	})
}
