package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "mastodon_cleaner"

// Metrics of a single run. There's no scrape endpoint: the registry is dumped to a node exporter textfile.
type Metrics struct {
	reg         *prometheus.Registry
	pages       prometheus.Counter
	fetched     prometheus.Counter
	matched     prometheus.Counter
	deleted     prometheus.Counter
	failed      prometheus.Counter
	lastSuccess prometheus.Gauge
}

func NewMetrics() (m Metrics) {
	m.reg = prometheus.NewRegistry()
	f := promauto.With(m.reg)
	m.pages = f.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "pages_fetched_total",
		Help:      "Status pages fetched.",
	})
	m.fetched = f.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "statuses_fetched_total",
		Help:      "Statuses fetched.",
	})
	m.matched = f.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "statuses_matched_total",
		Help:      "Statuses selected for deletion.",
	})
	m.deleted = f.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "statuses_deleted_total",
		Help:      "Statuses deleted.",
	})
	m.failed = f.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "statuses_delete_failed_total",
		Help:      "Statuses failed to delete.",
	})
	m.lastSuccess = f.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last run completed without a fatal error.",
	})
	return
}

func (m Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
