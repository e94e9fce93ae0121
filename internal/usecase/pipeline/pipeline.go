// Package pipeline chains enrichment, search, ranking, planning and
// verification into one recommendation run.
package pipeline

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/mahendramedapati27/unimatch/internal/domain"
	"github.com/mahendramedapati27/unimatch/internal/logger"
	"github.com/mahendramedapati27/unimatch/internal/observability"
	"github.com/mahendramedapati27/unimatch/internal/usecase/ranking"
	"github.com/mahendramedapati27/unimatch/internal/usecase/search"
)

// Diagnostics describes how a run produced its shortlist.
type Diagnostics struct {
	Query         string                  `json:"query"`
	Attempt       int                     `json:"attempt"`
	Step          string                  `json:"step,omitempty"`
	Filter        domain.SearchFilter     `json:"filter"`
	SearchOutcome search.Outcome          `json:"search_outcome"`
	Failures      []search.AttemptFailure `json:"failures,omitempty"`
	Candidates    int                     `json:"candidates"`
	RankingPath   ranking.Path            `json:"ranking_path"`
	RankingCause  string                  `json:"ranking_cause,omitempty"`
	Usage         domain.Usage            `json:"usage"`
	GeneratedAt   time.Time               `json:"generated_at"`
}

// Output is the result of one recommendation run.
type Output struct {
	Profile     domain.Profile       `json:"profile"`
	Enrichment  string               `json:"enrichment"`
	Matches     []domain.MatchResult `json:"matches"`
	Plan        string               `json:"plan"`
	Issues      []domain.Issue       `json:"issues"`
	Diagnostics Diagnostics          `json:"diagnostics"`
}

// Pipeline runs the recommendation stages in order.
type Pipeline struct {
	search   Searcher
	ranker   Ranker
	advisor  Advisor
	verifier Verifier
	now      func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock overrides the time source used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates a Pipeline.
func New(s Searcher, r Ranker, a Advisor, v Verifier, opts ...Option) *Pipeline {
	p := &Pipeline{search: s, ranker: r, advisor: a, verifier: v, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run never fails on data problems: every degradation shows up in the
// diagnostics and the output stays well-formed.
func (pl *Pipeline) Run(ctx context.Context, in domain.ProfileInput) Output {
	ctx, span := observability.StartPipelineSpan(ctx)
	defer span.End()
	ctx, usage := domain.NewContextWithUsage(ctx)
	p := domain.NewProfile(in)
	ctx, log := logger.WithFields(ctx, zap.String("level", string(p.Level)), zap.Strings("countries", p.TargetCountries))

	out := Output{Profile: p}

	out.Enrichment = pl.advisor.Enrich(ctx, p)

	res := pl.search.Search(ctx, p)
	ranked := pl.ranker.Rank(res.Matches, p)
	out.Matches = pl.ranker.Balance(ranked.Matches)
	if out.Matches == nil {
		out.Matches = []domain.MatchResult{}
	}

	out.Plan = pl.advisor.Plan(ctx, p, out.Matches)
	out.Issues = pl.verifier.Verify(p, out.Matches)
	if out.Issues == nil {
		out.Issues = []domain.Issue{}
	}

	out.Diagnostics = Diagnostics{
		Query:         res.Query,
		Attempt:       res.Attempt,
		Step:          res.Step,
		Filter:        res.Filter,
		SearchOutcome: res.Outcome,
		Failures:      res.Failures,
		Candidates:    len(res.Matches),
		RankingPath:   ranked.Path,
		Usage:         *usage,
		GeneratedAt:   pl.now().UTC(),
	}
	if ranked.Cause != nil {
		out.Diagnostics.RankingCause = ranked.Cause.Error()
	}

	span.SetAttributes(
		attribute.Int("search.attempt", res.Attempt),
		attribute.String("search.outcome", string(res.Outcome)),
		attribute.String("ranking.path", string(ranked.Path)),
		attribute.Int("shortlist.size", len(out.Matches)),
	)
	log.Info("recommendation run",
		zap.Int("attempt", res.Attempt),
		zap.String("search_outcome", string(res.Outcome)),
		zap.Int("candidates", len(res.Matches)),
		zap.String("ranking_path", string(ranked.Path)),
		zap.Int("shortlist", len(out.Matches)),
		zap.Int("issues", len(out.Issues)),
		zap.Int("embedding_tokens", usage.EmbeddingTokens),
		zap.Int("generation_tokens", usage.GenerationTokens),
	)
	return out
}
