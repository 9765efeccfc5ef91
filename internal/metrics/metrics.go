// Package metrics instruments the reference host's batch entrypoints
// with Prometheus counters/histograms/gauges, the same promauto style
// as the teacher's internal/api/handlers.go.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BatchRequestsTotal counts every batch call, labeled by
	// endpoint and whether it fully succeeded.
	BatchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledgerops_batch_requests_total",
		Help: "Total batch entrypoint calls processed, labeled by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	// BatchLatency measures batch entrypoint wall-clock latency.
	BatchLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledgerops_batch_duration_seconds",
		Help:    "Latency distribution of batch entrypoint calls",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"endpoint"})

	// RecordResultsTotal counts every per-record outcome the engine
	// reports, labeled by the exact result code name.
	RecordResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledgerops_record_results_total",
		Help: "Per-record outcomes reported by the engine, labeled by result code",
	}, []string{"endpoint", "result"})

	// SnapshotOpsTotal counts save/load snapshot operations by
	// backend and outcome.
	SnapshotOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledgerops_snapshot_operations_total",
		Help: "Snapshot save/load operations, labeled by backend, op, and outcome",
	}, []string{"backend", "op", "outcome"})

	// TableOccupancy exposes current table fill as a gauge per table.
	TableOccupancy = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ledgerops_table_occupancy",
		Help: "Current record count per table",
	}, []string{"table"})
)
