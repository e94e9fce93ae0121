package search

import (
	"context"

	"github.com/mahendramedapati27/unimatch/internal/domain"
)

// --- Mocks ---

type mockEmbedder struct {
	calls   int
	texts   []string
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	m.texts = append(m.texts, text)
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}, nil
}

type mockRepo struct {
	filters  []domain.SearchFilter
	limits   []int
	vectors  [][]float32
	searchFn func(ctx context.Context, call int, f domain.SearchFilter) ([]domain.MatchResult, error)
}

func (m *mockRepo) Search(
	ctx context.Context, vector []float32, f domain.SearchFilter, limit int,
) ([]domain.MatchResult, error) {
	m.filters = append(m.filters, f)
	m.limits = append(m.limits, limit)
	m.vectors = append(m.vectors, vector)
	if m.searchFn != nil {
		return m.searchFn(ctx, len(m.filters), f)
	}
	return nil, nil
}

// indexRepo is a tiny in-memory index that honors filters the way the
// vector store does and keeps fixture order.
type indexRepo struct {
	mockRepo
	records []domain.MatchResult
}

func newIndexRepo(records ...domain.MatchResult) *indexRepo {
	r := &indexRepo{records: records}
	r.searchFn = func(_ context.Context, _ int, f domain.SearchFilter) ([]domain.MatchResult, error) {
		expr := f.Expression()
		var out []domain.MatchResult
		for _, m := range r.records {
			if expr.Evaluate(m.ProgramRecord) {
				out = append(out, m)
			}
		}
		return out, nil
	}
	return r
}

// --- Fixtures ---

func ptr(v float64) *float64 { return &v }

func program(id, country string, level domain.Level, tuition *float64) domain.MatchResult {
	return domain.MatchResult{
		ProgramRecord: domain.ProgramRecord{
			UnivID:     id,
			UnivName:   "University " + id,
			Country:    country,
			Program:    "Computer Science",
			Level:      level,
			TuitionUSD: tuition,
		},
		SimilarityScore: 0.8,
	}
}

func germanyMasters() domain.Profile {
	return domain.Profile{
		Program:         "Computer Science",
		Interests:       []string{"AI", "Robotics"},
		TargetCountries: []string{"Germany"},
		Budget:          ptr(15000),
		Level:           domain.LevelMasters,
	}
}
