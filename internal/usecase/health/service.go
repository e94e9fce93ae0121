package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates every component failed.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	ComponentVectorIndex = "vector_index"
	ComponentEmbedding   = "embedding"
	ComponentGeneration  = "generation"
	ComponentCache       = "cache"
)

const defaultCheckTimeout = 3 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	index      IndexPinger
	embedding  ProviderChecker
	generation ProviderChecker
	cache      IndexPinger
	timeout    time.Duration
}

// Option configures optional components.
type Option func(*Service)

// WithGeneration adds the text generation provider check.
func WithGeneration(c ProviderChecker) Option {
	return func(s *Service) { s.generation = c }
}

// WithCache adds the embedding cache check.
func WithCache(p IndexPinger) Option {
	return func(s *Service) { s.cache = p }
}

// WithTimeout bounds each component check.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a Service. embedding can be nil.
func New(index IndexPinger, embedding ProviderChecker, opts ...Option) *Service {
	s := &Service{index: index, embedding: embedding, timeout: defaultCheckTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check runs health checks against all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	s.run(ctx, checks, ComponentVectorIndex, s.index.Ping)
	if s.embedding != nil {
		s.run(ctx, checks, ComponentEmbedding, s.embedding.HealthCheck)
	}
	if s.generation != nil {
		s.run(ctx, checks, ComponentGeneration, s.generation.HealthCheck)
	}
	if s.cache != nil {
		s.run(ctx, checks, ComponentCache, s.cache.Ping)
	}

	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed == len(checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}
	return Report{Status: status, Checks: checks}
}

func (s *Service) run(ctx context.Context, checks map[string]CheckResult, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		checks[name] = CheckError
		return
	}
	checks[name] = CheckOK
}
