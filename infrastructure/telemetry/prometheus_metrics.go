// Package telemetry provides the operational monitoring adapters for the
// import validation engine.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/stratix-platform/importcheck/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks run throughput, validation outcomes, and the
// confidence distribution of processed rows.
type PrometheusMetrics struct {
	rowsProcessed    *prometheus.CounterVec
	findingsEmitted  *prometheus.CounterVec
	runLatency       *prometheus.HistogramVec
	operationCounter *prometheus.CounterVec
	runGauges        *prometheus.GaugeVec
	rowConfidence    *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance and registers
// all required metrics in the global Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		rowsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "import_rows_processed_total",
				Help: "Total number of spreadsheet rows validated.",
			},
			[]string{"result", "component"},
		),
		findingsEmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "import_findings_emitted_total",
				Help: "Total number of validation findings emitted, by severity.",
			},
			[]string{"severity", "component"},
		),
		runLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "import_run_duration_seconds",
				Help:    "End-to-end duration of import validation runs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "component"},
		),
		operationCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "import_operations_total",
				Help: "Total number of operations performed by the validation engine.",
			},
			[]string{"operation", "status", "component"},
		),
		runGauges: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "import_run_state",
				Help: "Current state values from the latest validation run.",
			},
			[]string{"metric", "component"},
		),
		rowConfidence: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "import_row_confidence",
				Help:    "Distribution of per-row confidence scores.",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
			[]string{"component"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// run latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.runLatency.WithLabelValues(operation, component(labels)).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	comp := component(labels)

	switch metric {
	case "import_rows_validated":
		pm.rowsProcessed.WithLabelValues("validated", comp).Add(value)
	case "import_rows_invalid":
		pm.rowsProcessed.WithLabelValues("invalid", comp).Add(value)
	case "import_errors_emitted":
		pm.findingsEmitted.WithLabelValues("error", comp).Add(value)
	case "import_warnings_emitted":
		pm.findingsEmitted.WithLabelValues("warning", comp).Add(value)
	default:
		pm.operationCounter.WithLabelValues(metric, "success", comp).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.runGauges.WithLabelValues(metric, component(labels)).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	if metric == "import_row_confidence" {
		pm.rowConfidence.WithLabelValues(component(labels)).Observe(value)
		return
	}
	pm.runLatency.WithLabelValues(metric, component(labels)).Observe(value)
}

func component(labels map[string]string) string {
	if comp, ok := labels["component"]; ok {
		return comp
	}
	return "unknown"
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
