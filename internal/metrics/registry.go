package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var registerOnce sync.Once

// Register adds every unimatch collector to the default registry. Safe to call
// more than once; only the first call registers.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			httpInFlight,
			EmbeddingRequestsTotal,
			EmbeddingRequestDuration,
			EmbeddingErrorsTotal,
			EmbeddingCacheTotal,
			GenerationRequestDuration,
			TokensTotal,
			SearchAttemptsTotal,
			SearchRelaxationLevel,
			SearchOutcomesTotal,
			RankingPathTotal,
			GenerationRequestsTotal,
		)
	})
}
