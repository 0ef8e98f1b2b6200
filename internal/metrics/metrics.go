// Package metrics exposes Prometheus collectors for the matching flow.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbuddy_decisions_total",
			Help: "Total number of swipe decisions recorded",
		},
		[]string{"value"},
	)

	MatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymbuddy_matches_total",
			Help: "Total number of matches created",
		},
	)

	CompatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gymbuddy_compatibility_scores",
			Help:    "Distribution of served compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	SlotResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gymbuddy_session_slots_found",
			Help:    "Number of common session slots found per search",
			Buckets: prometheus.LinearBuckets(0, 1, 6),
		},
	)

	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gymbuddy_rpc_duration_seconds",
			Help: "Duration of gRPC calls",
		},
		[]string{"method", "code"},
	)
)

// ObserveDecision counts one decision and, when created, one match.
func ObserveDecision(value string, newMatch bool) {
	DecisionsTotal.WithLabelValues(value).Inc()
	if newMatch {
		MatchesTotal.Inc()
	}
}

// ObserveScores records the scores of a served recommendation list.
func ObserveScores(scores []float64) {
	for _, s := range scores {
		CompatibilityScores.Observe(s)
	}
}

// ObserveRPC records a finished call.
func ObserveRPC(method, code string, elapsed time.Duration) {
	RPCDuration.WithLabelValues(method, code).Observe(elapsed.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
