// Package metric provides Prometheus metrics for memkv.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry, recorders and HTTP handler
//   - collector.go: Custom collector sampling the store at scrape time
//
// Metrics include:
//
//   - Connection gauges and counters
//   - Command counters by name and result, and latency histograms
//   - Protocol error and rate limit counters
//   - Store key count
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
