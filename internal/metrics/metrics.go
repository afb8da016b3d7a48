// Package metrics holds the Prometheus collectors for the gallery service.
//
// Upstream:
//   - pixgallery_upstream_requests_total{status} (Counter): Pixabay calls by HTTP status or "error"
//   - pixgallery_upstream_request_duration_seconds (Histogram): Pixabay call latency
//
// Gallery:
//   - pixgallery_actions_total{action, outcome} (Counter): submit/load_more outcomes
//   - pixgallery_active_sessions (Gauge): sessions currently held in memory
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts Pixabay requests by status.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pixgallery_upstream_requests_total",
		Help: "Total Pixabay requests by HTTP status",
	}, []string{"status"})

	// UpstreamDuration tracks Pixabay request latency.
	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pixgallery_upstream_request_duration_seconds",
		Help:    "Pixabay request duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	// Actions counts user actions by outcome.
	Actions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pixgallery_actions_total",
		Help: "Total gallery actions by action and outcome",
	}, []string{"action", "outcome"})

	// ActiveSessions is the number of gallery sessions in memory.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pixgallery_active_sessions",
		Help: "Number of gallery sessions held in memory",
	})
)
