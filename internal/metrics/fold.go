package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rnafold"

// FoldMetrics records fold timings on a private registry.
type FoldMetrics struct {
	registry   *prometheus.Registry
	duration   *prometheus.HistogramVec
	tableBytes *prometheus.GaugeVec
	folds      *prometheus.CounterVec
}

// NewFoldMetrics creates the collectors on a fresh registry.
func NewFoldMetrics() *FoldMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &FoldMetrics{
		registry: reg,
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fill_duration_seconds",
			Help:      "Wall time of score-table fill plus traceback.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"strategy"}),
		tableBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_bytes",
			Help:      "Score-table footprint by sequence length.",
		}, []string{"length"}),
		folds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "folds_total",
			Help:      "Folds run, by strategy and outcome.",
		}, []string{"strategy", "status"}),
	}
}

// ObserveFold records one fold. Failed folds only count.
func (m *FoldMetrics) ObserveFold(strategy string, length int, d time.Duration, tableBytes uint64, err error) {
	if err != nil {
		m.folds.WithLabelValues(strategy, "error").Inc()
		return
	}
	m.folds.WithLabelValues(strategy, "ok").Inc()
	m.duration.WithLabelValues(strategy).Observe(d.Seconds())
	m.tableBytes.WithLabelValues(strconv.Itoa(length)).Set(float64(tableBytes))
}

// Registry exposes the registry, e.g. for a node-exporter textfile
// collector or tests.
func (m *FoldMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric to path atomically.
func (m *FoldMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
