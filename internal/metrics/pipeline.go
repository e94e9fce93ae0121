package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation pipeline metrics.
var (
	SearchAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_attempts_total",
			Help:      "Relaxation ladder attempts by step and outcome",
		},
		[]string{"attempt", "outcome"}, // outcome: hit / empty / error
	)

	SearchRelaxationLevel = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_relaxation_level",
			Help:      "Ladder step that produced results (0 when none did)",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		},
	)

	SearchOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_outcomes_total",
			Help:      "Search outcomes: matched, no_data, unavailable",
		},
		[]string{"outcome"},
	)

	RankingPathTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranking_path_total",
			Help:      "Ranker invocations by path (ranked / defaulted)",
		},
		[]string{"path"},
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_requests_total",
			Help:      "Text generation requests by stage and status",
		},
		[]string{"stage", "status"}, // status: success / fallback
	)
)
