// Package advice produces the enrichment notes and the application plan.
// Generation failures fall back to fixed templates.
package advice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/mahendramedapati27/unimatch/internal/domain"
	"github.com/mahendramedapati27/unimatch/internal/metrics"
	"github.com/mahendramedapati27/unimatch/internal/observability"
)

// Generation stages.
const (
	StageEnrichment = "enrichment"
	StagePlan       = "plan"
)

// Service renders prompts and asks the generator.
type Service struct {
	gen    domain.Generator
	logger *zap.Logger
}

// New creates a Service. A nil generator always uses the fallback templates.
func New(gen domain.Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gen: gen, logger: logger}
}

// Enrich returns visa, language, timeline and cost-of-living notes for the
// profile's target countries.
func (s *Service) Enrich(ctx context.Context, p domain.Profile) string {
	return s.generate(ctx, StageEnrichment, researcherSystem, researcherTmpl, enrichmentTmpl, p)
}

// Plan returns an application plan for the shortlisted matches.
func (s *Service) Plan(ctx context.Context, p domain.Profile, matches []domain.MatchResult) string {
	return s.generate(ctx, StagePlan, counselorSystem, counselorTmpl, planTmpl, planData{Profile: p, Matches: matches})
}

func (s *Service) generate(
	ctx context.Context, stage, system string, prompt, fallback *template.Template, data any,
) string {
	text, err := s.ask(ctx, stage, system, render(prompt, data))
	if err == nil {
		metrics.GenerationRequestsTotal.WithLabelValues(stage, "success").Inc()
		return text
	}

	metrics.GenerationRequestsTotal.WithLabelValues(stage, "fallback").Inc()
	if !errors.Is(err, errDisabled) {
		s.logger.Warn("generation failed, using fallback template",
			zap.String("stage", stage),
			zap.Error(err),
		)
	}
	return render(fallback, data)
}

var errDisabled = errors.New("generation disabled")

func (s *Service) ask(ctx context.Context, stage, system, prompt string) (text string, err error) {
	if s.gen == nil {
		return "", errDisabled
	}
	if prompt == "" {
		return "", fmt.Errorf("%w: empty prompt", domain.ErrGenerationFailed)
	}

	ctx, span := observability.StartGenerationSpan(ctx, stage)
	defer func() {
		observability.RecordError(span, err)
		span.End()
	}()

	text, err = s.gen.Generate(ctx, system, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrGenerationFailed)
	}
	return text, nil
}
