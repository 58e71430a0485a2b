package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "memkv"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Connection metrics
	ConnectionsActive prometheus.Gauge
	ConnectionsTotal  prometheus.Counter

	// Command metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Rejections
	ProtocolErrors prometheus.Counter
	RateLimited    prometheus.Counter
}

var (
	globalRegistry *Registry
	globalOnce     sync.Once
)

// Global returns the process-wide registry, creating it on first use.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// NewRegistry creates a registry with all memkv metrics plus the Go runtime
// and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,

		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of open client connections.",
		}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total number of accepted client connections.",
		}),

		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total number of processed commands.",
		}, []string{"command", "result"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Command execution latency.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		}, []string{"command"}),

		ProtocolErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "protocol_errors_total",
			Help:      "Connections closed because of malformed input.",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Commands rejected by the per-client rate limit.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.ConnectionsActive,
		r.ConnectionsTotal,
		r.CommandsTotal,
		r.CommandDuration,
		r.ProtocolErrors,
		r.RateLimited,
	)

	return r
}

// Register adds extra collectors, such as a StoreCollector.
func (r *Registry) Register(cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := r.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Gatherer exposes the underlying registry for scraping.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler serving this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ============================================================
// Recorders
// ============================================================

// ConnectionOpened records an accepted connection.
func (r *Registry) ConnectionOpened() {
	r.ConnectionsTotal.Inc()
	r.ConnectionsActive.Inc()
}

// ConnectionClosed records a closed connection.
func (r *Registry) ConnectionClosed() {
	r.ConnectionsActive.Dec()
}

// RecordCommand counts one command. result is a reply kind label
// ("simple", "bulk", "nil" or "error").
func (r *Registry) RecordCommand(command, result string) {
	r.CommandsTotal.WithLabelValues(command, result).Inc()
}

// ObserveCommandDuration records command latency in seconds.
func (r *Registry) ObserveCommandDuration(command string, seconds float64) {
	r.CommandDuration.WithLabelValues(command).Observe(seconds)
}

// IncProtocolErrors counts a connection closed on a protocol error.
func (r *Registry) IncProtocolErrors() {
	r.ProtocolErrors.Inc()
}

// IncRateLimited counts a rate limited command.
func (r *Registry) IncRateLimited() {
	r.RateLimited.Inc()
}
