// Package metrics exposes Prometheus collectors for the run loop.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voxca_jobs_submitted_total",
			Help: "Total number of configuration jobs enqueued",
		},
	)

	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxca_runs_total",
			Help: "Total number of finished runs by outcome",
		},
		[]string{"outcome"}, // completed, launch_failed, archive_failed
	)

	QueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "voxca_queue_length",
			Help: "Number of jobs waiting or running",
		},
	)

	LoopState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "voxca_loop_state",
			Help: "1 for the run loop's current state, 0 otherwise",
		},
		[]string{"state"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voxca_run_duration_seconds",
			Help:    "Wall time of the simulation executable",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 14),
		},
	)

	Renders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxca_renders_total",
			Help: "Result selections by outcome",
		},
		[]string{"outcome"}, // ok, error
	)
)

// Outcome labels.
const (
	OutcomeCompleted     = "completed"
	OutcomeLaunchFailed  = "launch_failed"
	OutcomeArchiveFailed = "archive_failed"
	OutcomeOK            = "ok"
	OutcomeError         = "error"
)
