package ranking

import (
	"fmt"

	"github.com/mahendramedapati27/unimatch/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

// candidate builds a scorable match with the given acceptance rate and similarity.
func candidate(id string, acceptance, similarity float64) domain.MatchResult {
	return domain.MatchResult{
		ProgramRecord: domain.ProgramRecord{
			UnivID:         id,
			UnivName:       "University " + id,
			Country:        "Germany",
			TuitionUSD:     ptr(10000),
			AcceptanceRate: ptr(acceptance),
			EmploymentRate: ptr(0.8),
			QSRanking:      intPtr(150),
		},
		SimilarityScore: similarity,
	}
}

// categorized builds an already-ranked match for Balance tests.
func categorized(id string, c domain.Category, composite float64) domain.MatchResult {
	return domain.MatchResult{
		ProgramRecord:  domain.ProgramRecord{UnivID: id},
		Category:       c,
		CompositeScore: composite,
	}
}

func pool(c domain.Category, n int, base float64) []domain.MatchResult {
	out := make([]domain.MatchResult, n)
	for i := range out {
		out[i] = categorized(fmt.Sprintf("%s-%d", c, i), c, base-float64(i)*0.01)
	}
	return out
}

func countByCategory(ms []domain.MatchResult) map[domain.Category]int {
	counts := make(map[domain.Category]int)
	for _, m := range ms {
		counts[m.Category]++
	}
	return counts
}

func budgetProfile(budget float64) domain.Profile {
	return domain.Profile{Budget: ptr(budget), Level: domain.LevelMasters}
}
