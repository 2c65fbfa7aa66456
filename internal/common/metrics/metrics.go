// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_requests_total",
			Help: "Total number of match requests processed",
		},
		[]string{"status"},
	)

	MatchRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "matching_request_duration_seconds",
			Help: "Duration of a full findMatches call in seconds",
		},
	)

	CandidatesScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_candidates_scored",
			Help:    "Candidate pool size scored per match request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	CandidatesBelowThreshold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_candidates_below_threshold_total",
			Help: "Candidates dropped by the base score cutoff",
		},
	)

	LearningSaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_learning_save_failures_total",
			Help: "Learning data persistence failures (non-fatal)",
		},
	)
)
