// Package ranking scores search matches, assigns admission categories and
// balances the final shortlist across them.
package ranking

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/mahendramedapati27/unimatch/internal/domain"
	"github.com/mahendramedapati27/unimatch/internal/metrics"
)

const neutral = 0.5

// Path tells which branch produced a Ranking.
type Path string

// Ranking paths.
const (
	PathRanked    Path = "ranked"
	PathDefaulted Path = "defaulted"
)

// Ranking is the tagged result of Rank. On the defaulted path Matches keep
// their input order and Cause says why scoring was abandoned.
type Ranking struct {
	Path    Path
	Matches []domain.MatchResult
	Cause   error
}

// Ranker assigns composite scores and categories.
type Ranker struct {
	cfg    Config
	logger *zap.Logger
	score  func(m domain.MatchResult, p domain.Profile) domain.ScoreBreakdown
}

// New creates a Ranker. Zero config fields take defaults.
func New(cfg Config, logger *zap.Logger) *Ranker {
	cfg.ApplyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Ranker{cfg: cfg, logger: logger}
	r.score = r.breakdown
	return r
}

// Config returns the effective configuration.
func (r *Ranker) Config() Config { return r.cfg }

// Rank scores and categorizes every match. The output always has the same
// length as the input and never aliases it.
func (r *Ranker) Rank(matches []domain.MatchResult, p domain.Profile) (out Ranking) {
	defer func() {
		if rec := recover(); rec != nil {
			out = r.defaulted(matches, p, fmt.Errorf("ranking panic: %v", rec), false)
		}
		metrics.RankingPathTotal.WithLabelValues(string(out.Path)).Inc()
		if out.Path == PathDefaulted {
			r.logger.Warn("ranking fell back to default categories",
				zap.Int("matches", len(out.Matches)),
				zap.Error(out.Cause),
			)
		}
	}()

	if err := validate(matches); err != nil {
		return r.defaulted(matches, p, err, true)
	}
	return r.ranked(matches, p)
}

func validate(matches []domain.MatchResult) error {
	for _, m := range matches {
		if m.AcceptanceRate == nil {
			return fmt.Errorf("%s: %w: %s", m.UnivID, domain.ErrMissingField, domain.FieldAcceptanceRate)
		}
		if !finite(m.SimilarityScore) {
			return fmt.Errorf("%s: %w: similarity %v", m.UnivID, domain.ErrInvalidScore, m.SimilarityScore)
		}
	}
	return nil
}

func (r *Ranker) ranked(matches []domain.MatchResult, p domain.Profile) Ranking {
	out := make([]domain.MatchResult, len(matches))
	for i, m := range matches {
		m.Scores = r.score(m, p)
		m.CompositeScore = r.composite(m.Scores)
		m.Category = r.adjust(r.categorize(m.AcceptanceRate), m.CompositeScore)
		out[i] = m
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompositeScore > out[j].CompositeScore
	})
	return Ranking{Path: PathRanked, Matches: out}
}

// defaulted keeps input order and uses raw acceptance thresholds. Scores are
// filled in only when scoring is known to be safe.
func (r *Ranker) defaulted(matches []domain.MatchResult, p domain.Profile, cause error, score bool) Ranking {
	out := make([]domain.MatchResult, len(matches))
	for i, m := range matches {
		m.Scores = domain.ScoreBreakdown{}
		m.CompositeScore = 0
		if score && finite(m.SimilarityScore) {
			m.Scores = r.score(m, p)
			m.CompositeScore = r.composite(m.Scores)
		}
		m.Category = r.categorize(m.AcceptanceRate)
		out[i] = m
	}
	return Ranking{Path: PathDefaulted, Matches: out, Cause: cause}
}

func (r *Ranker) breakdown(m domain.MatchResult, p domain.Profile) domain.ScoreBreakdown {
	return domain.ScoreBreakdown{
		Similarity: clamp01(m.SimilarityScore),
		Financial:  r.financialFit(m.TuitionUSD, p.Budget),
		Academic:   academicFit(m.EmploymentRate, m.QSRanking),
	}
}

func (r *Ranker) composite(s domain.ScoreBreakdown) float64 {
	c := r.cfg
	total := c.SimilarityWeight + c.FinancialWeight + c.AcademicWeight
	score := c.SimilarityWeight*s.Similarity + c.FinancialWeight*s.Financial + c.AcademicWeight*s.Academic
	return score / total
}

// financialFit is 1 within budget and decays linearly to 0 at the decay ceiling.
func (r *Ranker) financialFit(tuition, budget *float64) float64 {
	if tuition == nil || budget == nil {
		return neutral
	}
	t, b := *tuition, *budget
	if t <= b {
		return 1
	}
	ceiling := b * r.cfg.BudgetDecayCeiling
	if t >= ceiling {
		return 0
	}
	return (ceiling - t) / (ceiling - b)
}

// academicFit blends employment rate with an inverse QS rank score.
func academicFit(employment *float64, qs *int) float64 {
	emp := neutral
	if employment != nil {
		emp = clamp01(*employment)
	}
	rank := neutral
	if qs != nil && *qs > 0 {
		rank = 100 / (100 + float64(*qs))
	}
	return 0.6*emp + 0.4*rank
}

func (r *Ranker) categorize(acceptance *float64) domain.Category {
	if acceptance == nil {
		return domain.CategoryTarget
	}
	switch a := *acceptance; {
	case a < r.cfg.ReachBelow:
		return domain.CategoryReach
	case a >= r.cfg.SafetyFrom:
		return domain.CategorySafety
	}
	return domain.CategoryTarget
}

func (r *Ranker) adjust(c domain.Category, composite float64) domain.Category {
	switch {
	case composite >= r.cfg.PromoteAt:
		return c.Safer()
	case composite <= r.cfg.DemoteAt:
		return c.Riskier()
	}
	return c
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }
