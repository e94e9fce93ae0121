package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/mahendramedapati27/unimatch/internal/db/memory"
	"github.com/mahendramedapati27/unimatch/internal/domain"
	"github.com/mahendramedapati27/unimatch/internal/repository/program"
	"github.com/mahendramedapati27/unimatch/internal/usecase/advice"
	"github.com/mahendramedapati27/unimatch/internal/usecase/ranking"
	"github.com/mahendramedapati27/unimatch/internal/usecase/search"
	"github.com/mahendramedapati27/unimatch/internal/usecase/verify"
)

var testNow = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

func build(idx *memory.Index, emb search.Embedder, gen domain.Generator) *Pipeline {
	orch := search.New(program.New(idx, "universities"), emb)
	return New(
		orch,
		ranking.New(ranking.Config{}, nil),
		advice.New(gen, nil),
		verify.New(verify.WithClock(func() time.Time { return testNow })),
		WithClock(func() time.Time { return testNow }),
	)
}

func TestRun_EndToEndExample(t *testing.T) {
	idx := newIndex(t, germanCS())
	pl := build(idx, &fixedEmbedder{vector: []float32{1, 0}}, nil)

	out := pl.Run(context.Background(), profileInput())

	if out.Diagnostics.Attempt != 1 {
		t.Fatalf("expected attempt 1, got %d", out.Diagnostics.Attempt)
	}
	if out.Diagnostics.SearchOutcome != search.OutcomeMatched {
		t.Errorf("expected matched, got %q", out.Diagnostics.SearchOutcome)
	}
	if out.Diagnostics.RankingPath != ranking.PathRanked {
		t.Errorf("expected ranked path, got %q (%s)", out.Diagnostics.RankingPath, out.Diagnostics.RankingCause)
	}
	if len(out.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(out.Matches))
	}
	m := out.Matches[0]
	if m.UnivID != "tum-cs" || m.Category != domain.CategoryTarget {
		t.Errorf("expected tum-cs as target, got %s/%s", m.UnivID, m.Category)
	}
	if m.Scores.Financial != 1 {
		t.Errorf("expected full financial fit, got %v", m.Scores.Financial)
	}
	if math.Abs(m.SimilarityScore-0.82) > 1e-3 {
		t.Errorf("expected similarity ~0.82, got %v", m.SimilarityScore)
	}
	if out.Enrichment == "" || out.Plan == "" {
		t.Error("expected fallback enrichment and plan")
	}
	if u := out.Diagnostics.Usage; u.EmbeddingCalls != 1 || u.EmbeddingTokens != 5 {
		t.Errorf("expected one embedding call in usage, got %+v", u)
	}
	if !out.Diagnostics.GeneratedAt.Equal(testNow) {
		t.Errorf("unexpected generated_at %v", out.Diagnostics.GeneratedAt)
	}
	// 12000 is above the typical German range and the deadline is 141 days out
	if len(out.Issues) != 1 || out.Issues[0].Severity != domain.SeverityMedium {
		t.Errorf("expected one tuition issue, got %+v", out.Issues)
	}
}

func TestRun_NonEmptyIndexAlwaysMatches(t *testing.T) {
	idx := newIndex(t, memory.Point{
		ID:      "kyoto",
		Vector:  []float32{0, 1},
		Payload: map[string]any{"univ_name": "Kyoto", "country": "Japan", "level": "phd", "acceptance_rate": "25%"},
	})
	pl := build(idx, &fixedEmbedder{vector: []float32{1, 0}}, nil)

	out := pl.Run(context.Background(), profileInput())

	if out.Diagnostics.Attempt != 5 {
		t.Errorf("expected unfiltered attempt, got %d", out.Diagnostics.Attempt)
	}
	if len(out.Matches) != 1 || out.Matches[0].UnivID != "kyoto" {
		t.Fatalf("expected kyoto via point id, got %+v", out.Matches)
	}
}

func TestRun_EmptyIndex(t *testing.T) {
	pl := build(newIndex(t), &fixedEmbedder{vector: []float32{1, 0}}, nil)

	out := pl.Run(context.Background(), profileInput())

	if out.Diagnostics.SearchOutcome != search.OutcomeNoData {
		t.Errorf("expected no_data, got %q", out.Diagnostics.SearchOutcome)
	}
	if out.Matches == nil || len(out.Matches) != 0 {
		t.Errorf("expected empty non-nil matches, got %v", out.Matches)
	}
	if out.Issues == nil {
		t.Error("expected empty non-nil issues")
	}
}

func TestRun_EmbeddingUnavailable(t *testing.T) {
	idx := newIndex(t, germanCS())
	pl := build(idx, &fixedEmbedder{err: errors.New("provider down")}, nil)

	out := pl.Run(context.Background(), profileInput())

	if out.Diagnostics.SearchOutcome != search.OutcomeUnavailable {
		t.Errorf("expected unavailable, got %q", out.Diagnostics.SearchOutcome)
	}
	if len(out.Matches) != 0 {
		t.Errorf("expected no matches, got %d", len(out.Matches))
	}
}

func TestRun_DefaultedRanking(t *testing.T) {
	p := germanCS()
	delete(p.Payload, "acceptance_rate")
	pl := build(newIndex(t, p), &fixedEmbedder{vector: []float32{1, 0}}, nil)

	out := pl.Run(context.Background(), profileInput())

	if out.Diagnostics.RankingPath != ranking.PathDefaulted {
		t.Fatalf("expected defaulted ranking, got %q", out.Diagnostics.RankingPath)
	}
	if out.Diagnostics.RankingCause == "" {
		t.Error("expected a ranking cause")
	}
	if len(out.Matches) != 1 || out.Matches[0].Category != domain.CategoryTarget {
		t.Errorf("expected single target match, got %+v", out.Matches)
	}
}

func TestRun_ShortlistBalanced(t *testing.T) {
	var points []memory.Point
	rates := []float64{0.05, 0.25, 0.6}
	for i := 0; i < 30; i++ {
		id := fmt.Sprintf("p%02d", i)
		points = append(points, memory.Point{
			ID:     id,
			Vector: []float32{1, float32(i) / 30},
			Payload: map[string]any{
				"univ_id":         id,
				"country":         "Germany",
				"level":           "masters",
				"tuition_usd":     3000,
				"acceptance_rate": rates[i%3],
			},
		})
	}
	gen := &mockGenerator{}
	pl := build(newIndex(t, points...), &fixedEmbedder{vector: []float32{1, 0}}, gen)

	out := pl.Run(context.Background(), profileInput())

	if len(out.Matches) != 10 {
		t.Fatalf("expected shortlist of 10, got %d", len(out.Matches))
	}
	if out.Diagnostics.Candidates != 20 {
		t.Errorf("expected 20 candidates from the default limit, got %d", out.Diagnostics.Candidates)
	}
	if gen.calls != 2 || out.Plan != "generated" {
		t.Errorf("expected enrichment and plan to be generated, calls=%d", gen.calls)
	}
}
