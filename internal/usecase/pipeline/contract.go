package pipeline

import (
	"context"

	"github.com/mahendramedapati27/unimatch/internal/domain"
	"github.com/mahendramedapati27/unimatch/internal/usecase/ranking"
	"github.com/mahendramedapati27/unimatch/internal/usecase/search"
)

// Searcher runs the relaxation search.
type Searcher interface {
	Search(ctx context.Context, p domain.Profile) search.Result
}

// Ranker scores matches and balances the shortlist.
type Ranker interface {
	Rank(matches []domain.MatchResult, p domain.Profile) ranking.Ranking
	Balance(ms []domain.MatchResult) []domain.MatchResult
}

// Advisor produces enrichment notes and the application plan.
type Advisor interface {
	Enrich(ctx context.Context, p domain.Profile) string
	Plan(ctx context.Context, p domain.Profile, matches []domain.MatchResult) string
}

// Verifier flags issues on shortlisted matches.
type Verifier interface {
	Verify(p domain.Profile, matches []domain.MatchResult) []domain.Issue
}
