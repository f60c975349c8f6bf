package ports

import (
	"time"
)

// MetricsCollector defines the interface for collecting operational metrics
// from the validation engine. Implementations should integrate with
// observability platforms like Prometheus, OpenTelemetry, or custom
// monitoring solutions.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	// This is useful for tracking events like rows validated or findings
	// emitted per severity.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	// This is useful for tracking values like batch size or average
	// confidence of the latest run.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram.
	// This is useful for tracking distributions like per-row confidence
	// scores.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
