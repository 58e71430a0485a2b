package httpserver

import (
	"net/http"
	"time"

	"github.com/yndnr/memkv-go/internal/telemetry/logger"
	"github.com/yndnr/memkv-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the admin router.
type RouterConfig struct {
	// Metrics is the registry exposed on /metrics. Nil uses metric.Global().
	Metrics *metric.Registry

	// Store reports the key count for /healthz.
	Store metric.KeyCounter

	// Logger for request logging. Nil uses logger.Default().
	Logger logger.Logger

	// StartTime is the process start used for uptime. Zero means now.
	StartTime time.Time
}

// NewRouter creates the admin handler with /metrics and /healthz.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = metric.Global()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	if cfg.StartTime.IsZero() {
		cfg.StartTime = time.Now()
	}

	health := &healthHandler{
		store:   cfg.Store,
		started: cfg.StartTime,
		now:     time.Now,
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", cfg.Metrics.Handler())
	mux.Handle("GET /healthz", health)

	return Chain(mux,
		RequestID(),
		AccessLog(cfg.Logger),
		Recover(),
	)
}
