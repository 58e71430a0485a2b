package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// KeyCounter reports the number of keys in a store.
type KeyCounter interface {
	Len() int
}

// StoreCollector samples store statistics at scrape time.
type StoreCollector struct {
	store KeyCounter
	keys  *prometheus.Desc
}

// NewStoreCollector creates a collector for store.
func NewStoreCollector(store KeyCounter) *StoreCollector {
	return &StoreCollector{
		store: store,
		keys: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "keys"),
			"Number of keys in the store.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keys
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(c.store.Len()))
}
