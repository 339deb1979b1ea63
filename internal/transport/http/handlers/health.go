package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/metrics"
	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/response"
)

// PingFunc reports whether a dependency is reachable.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]PingFunc
	timeout time.Duration
}

func NewHealthHandler(checks map[string]PingFunc) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.Data(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz pings every registered dependency and answers 503 if any fails.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	out := make(map[string]string, len(names))
	for _, name := range names {
		err := h.checks[name](ctx)
		metrics.SetDependencyHealth(name, err == nil)
		if err != nil {
			zlog.Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			out[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		out[name] = "up"
	}
	response.Data(w, status, out)
}
