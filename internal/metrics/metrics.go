// Package metrics holds the engine and export collectors served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gatesim"

var (
	// RunsTotal counts finished engine runs by mode and outcome
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "engine_runs_total",
		Help:      "Engine runs by mode and outcome.",
	}, []string{"mode", "outcome"})

	// RunsInFlight tracks runs holding a concurrency slot
	RunsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "engine_runs_in_flight",
		Help:      "Engine runs currently executing.",
	})

	// RunDuration observes engine wall time
	RunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "engine_run_duration_seconds",
		Help:      "Engine run wall time.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"mode"})

	// ArchiveWrites counts archive mirror writes by result
	ArchiveWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "archive_writes_total",
		Help:      "Configuration archive writes by result.",
	}, []string{"result"})

	// ExportBytes observes the size of uploaded export bundles
	ExportBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "export_bundle_bytes",
		Help:      "Size of uploaded export bundles.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
	})
)

// Result labels a success or failure
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
