package metrics

import (
	"time"

	"library-doctor/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_doctor_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "library_doctor_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "library_doctor_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Reconciliation metrics
var (
	ReconcileRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_doctor_reconcile_runs_total",
			Help: "Total number of reconciliation runs",
		},
	)

	ReconcileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "library_doctor_reconcile_duration_seconds",
			Help:    "Reconciliation run duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ReconcileLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "library_doctor_reconcile_last_run_timestamp",
			Help: "Unix timestamp of the last reconciliation run",
		},
	)

	ReconcileFindings = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "library_doctor_reconcile_findings",
			Help: "Finding counts of the last reconciliation run",
		},
		[]string{"kind"},
	)
)

// Document metrics
var (
	DocumentLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_doctor_document_loads_total",
			Help: "Total number of library document loads",
		},
		[]string{"status"}, // "success", "error"
	)

	DocumentCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_doctor_document_cache_hits_total",
			Help: "Total number of library document cache hits",
		},
	)

	IntegrityIssues = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "library_doctor_integrity_issues",
			Help: "Issue counts of the last document integrity check",
		},
		[]string{"check"},
	)

	PublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_doctor_publish_total",
			Help: "Total number of publish operations",
		},
		[]string{"status"}, // "success", "error"
	)
)

// ObserveReconcile records the outcome of one reconciliation run.
func ObserveReconcile(s reconcile.Summary, elapsed time.Duration) {
	ReconcileRunsTotal.Inc()
	ReconcileDuration.Observe(elapsed.Seconds())
	ReconcileLastRunTimestamp.Set(float64(time.Now().Unix()))

	ReconcileFindings.WithLabelValues("total").Set(float64(s.TotalTracks))
	ReconcileFindings.WithLabelValues("ok").Set(float64(s.OK))
	ReconcileFindings.WithLabelValues("missing").Set(float64(s.Missing))
	ReconcileFindings.WithLabelValues("unresolvable").Set(float64(s.Unresolvable))
	ReconcileFindings.WithLabelValues("not_imported").Set(float64(s.NotImported))
	ReconcileFindings.WithLabelValues("duplicates").Set(float64(s.Duplicates))
	ReconcileFindings.WithLabelValues("relocatable_unique").Set(float64(s.RelocatableUnique))
	ReconcileFindings.WithLabelValues("relocatable_ambiguous").Set(float64(s.RelocatableAmbiguous))
}

// Status returns the status label for an operation outcome.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
