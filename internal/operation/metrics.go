package operation

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unknownLabel replaces unregistered operation names so arbitrary caller
// input cannot create new label values.
const unknownLabel = "unknown"

var (
	executionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textchef_operation_executions_total",
			Help: "Total operation executions by operation and status",
		},
		[]string{"operation", "status"},
	)

	executionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "textchef_operation_duration_seconds",
			Help:    "Duration of operation executions",
			Buckets: []float64{.00001, .0001, .001, .01, .1, 1},
		},
		[]string{"operation", "status"},
	)

	errorsByType = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textchef_operation_errors_total",
			Help: "Total failed operation executions by error type",
		},
		[]string{"error_type"},
	)

	parameterFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textchef_operation_parameter_fallbacks_total",
			Help: "Supplied parameters that failed to coerce and were replaced by their default",
		},
		[]string{"operation", "parameter"},
	)
)

// recordMetrics records one execution.
func recordMetrics(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
		errorsByType.WithLabelValues(errorKind(err)).Inc()
	}

	executionsTotal.WithLabelValues(operation, status).Inc()
	executionDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func recordFallback(operation, parameter string) {
	parameterFallbacks.WithLabelValues(operation, parameter).Inc()
}

// errorKind returns the classification of err, or "unclassified".
func errorKind(err error) string {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return "unclassified"
}
