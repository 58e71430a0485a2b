package httpserver

import (
	"net/http"
	"time"

	"github.com/yndnr/memkv-go/internal/infra/buildinfo"
	"github.com/yndnr/memkv-go/internal/telemetry/metric"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status        string         `json:"status"`
	Time          string         `json:"time"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Keys          int            `json:"keys"`
	Build         buildinfo.Info `json:"build"`
}

type healthHandler struct {
	store   metric.KeyCounter
	started time.Time
	now     func() time.Time
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	now := h.now()

	resp := HealthResponse{
		Status:        "healthy",
		Time:          now.UTC().Format(time.RFC3339),
		UptimeSeconds: int64(now.Sub(h.started) / time.Second),
		Build:         buildinfo.Get(),
	}
	if h.store != nil {
		resp.Keys = h.store.Len()
	}

	writeJSON(w, http.StatusOK, resp)
}
