package pipeline

import (
	"context"
	"testing"

	"github.com/mahendramedapati27/unimatch/internal/db/memory"
	"github.com/mahendramedapati27/unimatch/internal/domain"
)

// --- Mocks ---

// fixedEmbedder returns the same unit vector for every text, so similarity
// equals each point's cosine to it.
type fixedEmbedder struct {
	vector []float32
	err    error
}

func (m *fixedEmbedder) Embed(ctx context.Context, _ string) (domain.EmbeddingResult, error) {
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	domain.UsageFromContext(ctx).AddEmbedding(5)
	return domain.EmbeddingResult{Embedding: m.vector, TotalTokens: 5}, nil
}

type mockGenerator struct {
	calls int
	err   error
}

func (m *mockGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	m.calls++
	return "generated", m.err
}

// --- Fixtures ---

func newIndex(t *testing.T, points ...memory.Point) *memory.Index {
	t.Helper()
	idx, err := memory.New(2)
	if err != nil {
		t.Fatal(err)
	}
	if err := idx.Upsert(points...); err != nil {
		t.Fatal(err)
	}
	return idx
}

func germanCS() memory.Point {
	return memory.Point{
		ID:     "tum-cs",
		Vector: []float32{0.82, 0.5724},
		Payload: map[string]any{
			"univ_id":             "tum-cs",
			"univ_name":           "TU Munich",
			"country":             "Germany",
			"program":             "Computer Science",
			"level":               "masters",
			"tuition_usd":         "12000",
			"acceptance_rate":     0.3,
			"deadline":            "2026-05-31",
			"living_cost_monthly": 1100,
			"scholarship_tags":    "DAAD, merit",
		},
	}
}

func profileInput() domain.ProfileInput {
	return domain.ProfileInput{
		Name:            "Asha",
		Program:         "Computer Science",
		Interests:       "AI, Robotics",
		TargetCountries: "Germany",
		Budget:          "15000",
		Level:           "masters",
		Origin:          "India",
	}
}
