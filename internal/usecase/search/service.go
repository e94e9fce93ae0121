package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mahendramedapati27/unimatch/internal/domain"
	"github.com/mahendramedapati27/unimatch/internal/metrics"
	"github.com/mahendramedapati27/unimatch/internal/observability"
)

const defaultLimit = 20

// Outcome classifies how a search ended.
type Outcome string

// Search outcomes.
const (
	OutcomeMatched     Outcome = "matched"
	OutcomeNoData      Outcome = "no_data"
	OutcomeUnavailable Outcome = "unavailable"
)

// AttemptFailure records a transport error swallowed by the ladder.
type AttemptFailure struct {
	Attempt int    `json:"attempt"`
	Step    string `json:"step"`
	Error   string `json:"error"`
}

// Result is the outcome of a relaxation search.
type Result struct {
	Matches  []domain.MatchResult `json:"matches"`
	Attempt  int                  `json:"attempt"` // 1..5, 0 when nothing matched
	Step     string               `json:"step,omitempty"`
	Filter   domain.SearchFilter  `json:"filter"`
	Outcome  Outcome              `json:"outcome"`
	Failures []AttemptFailure     `json:"failures,omitempty"`
	Query    string               `json:"query"`
}

// Orchestrator runs the relaxation ladder over the program index.
type Orchestrator struct {
	repo       Repository
	embed      Embedder
	steps      []Step
	limit      int
	minResults int
	logger     *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLimit sets the per-attempt result limit.
func WithLimit(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithMinResults sets how many verified records an attempt needs to stop the ladder.
func WithMinResults(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.minResults = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates a search orchestrator.
func New(repo Repository, embed Embedder, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		repo:       repo,
		embed:      embed,
		steps:      Ladder(),
		limit:      defaultLimit,
		minResults: 1,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Search embeds the profile query once and walks the ladder until an attempt
// yields enough verified records. Failures never escape: a transport error
// empties its attempt, and the result says whether the index had no data or
// could not be reached.
func (o *Orchestrator) Search(ctx context.Context, p domain.Profile) Result {
	res := Result{Query: BuildQuery(p)}

	emb, err := o.embed.Embed(ctx, res.Query)
	if err != nil {
		o.logger.Warn("query embedding failed", zap.Error(err))
		res.Outcome = OutcomeUnavailable
		res.Failures = append(res.Failures, AttemptFailure{Step: "embed", Error: err.Error()})
		o.finish(res)
		return res
	}

	// fallback holds the first non-empty attempt in case none reaches minResults.
	var fallback *Result
	for i, step := range o.steps {
		if ctx.Err() != nil {
			res.Failures = append(res.Failures, AttemptFailure{Attempt: i + 1, Step: step.Name, Error: ctx.Err().Error()})
			break
		}
		attempt := i + 1
		f := step.Build(p)

		matches, err := o.attempt(ctx, attempt, step.Name, emb.Embedding, f)
		if err != nil {
			o.logger.Warn("search attempt failed",
				zap.Int("attempt", attempt),
				zap.String("step", step.Name),
				zap.Error(err),
			)
			res.Failures = append(res.Failures, AttemptFailure{Attempt: attempt, Step: step.Name, Error: err.Error()})
			continue
		}
		if len(matches) == 0 {
			continue
		}

		hit := res
		hit.Matches, hit.Attempt, hit.Step, hit.Filter = matches, attempt, step.Name, f
		if len(matches) >= o.minResults {
			hit.Outcome = OutcomeMatched
			o.finish(hit)
			return hit
		}
		if fallback == nil {
			fallback = &hit
		}
	}

	if fallback != nil {
		fallback.Outcome = OutcomeMatched
		fallback.Failures = res.Failures
		o.finish(*fallback)
		return *fallback
	}

	res.Outcome = OutcomeNoData
	if len(res.Failures) > 0 {
		res.Outcome = OutcomeUnavailable
	}
	o.finish(res)
	return res
}

// attempt runs one ladder step and drops records that violate the applied filter.
func (o *Orchestrator) attempt(
	ctx context.Context, attempt int, step string, vector []float32, f domain.SearchFilter,
) (matches []domain.MatchResult, err error) {
	ctx, span := observability.StartSearchAttemptSpan(ctx, attempt, step)
	defer func() {
		observability.RecordError(span, err)
		span.End()
	}()
	label := strconv.Itoa(attempt)

	raw, err := o.repo.Search(ctx, vector, f, o.limit)
	if err != nil {
		metrics.SearchAttemptsTotal.WithLabelValues(label, "error").Inc()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}

	expr := f.Expression()
	verified := raw[:0:0]
	for _, m := range raw {
		if expr.Evaluate(m.ProgramRecord) {
			verified = append(verified, m)
			continue
		}
		o.logger.Debug("dropped record violating filter",
			zap.String("univ_id", m.UnivID),
			zap.Int("attempt", attempt),
			zap.Stringer("filter", expr),
		)
	}

	outcome := "hit"
	if len(verified) == 0 {
		outcome = "empty"
	}
	metrics.SearchAttemptsTotal.WithLabelValues(label, outcome).Inc()
	o.logger.Debug("search attempt",
		zap.Int("attempt", attempt),
		zap.String("step", step),
		zap.Stringer("filter", expr),
		zap.Int("returned", len(raw)),
		zap.Int("verified", len(verified)),
	)
	return verified, nil
}

func (o *Orchestrator) finish(res Result) {
	metrics.SearchRelaxationLevel.Observe(float64(res.Attempt))
	metrics.SearchOutcomesTotal.WithLabelValues(string(res.Outcome)).Inc()

	switch res.Outcome {
	case OutcomeMatched:
		o.logger.Info("search matched",
			zap.Int("attempt", res.Attempt),
			zap.String("step", res.Step),
			zap.Int("matches", len(res.Matches)),
		)
	case OutcomeNoData:
		o.logger.Info("search found no data at any relaxation level")
	case OutcomeUnavailable:
		o.logger.Warn("search unavailable", zap.Int("failures", len(res.Failures)))
	}
}
