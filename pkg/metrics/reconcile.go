package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReconcileMetrics records reconciliation run outcomes per order type.
type ReconcileMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	changes  *prometheus.HistogramVec
}

// NewReconcileMetrics registers the reconciliation metrics on the provided registerer.
func NewReconcileMetrics(reg prometheus.Registerer) *ReconcileMetrics {
	if reg == nil {
		return &ReconcileMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reconcile_duration_seconds",
		Help:    "Duration of order reconciliation runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"order_type"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_success",
		Help: "Successful order reconciliation runs.",
	}, []string{"order_type"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_failure",
		Help: "Failed order reconciliation runs.",
	}, []string{"order_type", "stage"})
	changes := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reconcile_item_changes",
		Help:    "Item change records written per reconciliation run.",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	}, []string{"order_type"})
	reg.MustRegister(duration, success, failure, changes)
	return &ReconcileMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		changes:  changes,
	}
}

// ObserveDuration records the duration for a run against the given order type.
func (m *ReconcileMetrics) ObserveDuration(orderType string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(orderType)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the given order type.
func (m *ReconcileMetrics) IncSuccess(orderType string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(orderType)).Inc()
}

// IncFailure increments the failure counter for the given order type and pipeline stage.
func (m *ReconcileMetrics) IncFailure(orderType, stage string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(orderType), normalizeLabel(stage)).Inc()
}

// ObserveItemChanges records how many change records one run produced.
func (m *ReconcileMetrics) ObserveItemChanges(orderType string, count int) {
	if m == nil || m.changes == nil {
		return
	}
	m.changes.WithLabelValues(normalizeLabel(orderType)).Observe(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
