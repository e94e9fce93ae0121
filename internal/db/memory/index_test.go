package memory

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mahendramedapati27/unimatch/internal/db"
	"github.com/mahendramedapati27/unimatch/internal/domain"
	"github.com/mahendramedapati27/unimatch/internal/domain/search/filter"
)

func seed(t *testing.T) *Index {
	t.Helper()
	idx, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	err = idx.Upsert(
		Point{ID: "ger-001", Vector: []float32{1, 0}, Payload: map[string]any{
			"univ_name": "TU Munich", "program": "Computer Science", "country": "Germany", "tuition_usd": "12000",
		}},
		Point{ID: "usa-001", Vector: []float32{0.8, 0.6}, Payload: map[string]any{
			"univ_name": "MIT", "country": "USA", "tuition_usd": 58000.0,
		}},
		Point{ID: "ned-001", Vector: []float32{0, 1}, Payload: map[string]any{
			"univ_name": "TU Delft", "country": "Netherlands", "tuition_usd": "unknown",
		}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestNew_InvalidDimensions(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error")
	}
}

func TestSearchKNN_OrdersByCosine(t *testing.T) {
	idx := seed(t)

	res, err := idx.SearchKNN(context.Background(), &db.KNNQuery{Vector: []float32{1, 0}, K: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(res.Entries))
	}
	want := []string{"ger-001", "usa-001", "ned-001"}
	for i, id := range want {
		if res.Entries[i].ID != id {
			t.Errorf("entry %d = %s, want %s", i, res.Entries[i].ID, id)
		}
	}
	if math.Abs(res.Entries[1].Score-0.8) > 1e-6 {
		t.Errorf("expected cosine 0.8, got %v", res.Entries[1].Score)
	}
}

func TestSearchKNN_AppliesFilterAndLimit(t *testing.T) {
	idx := seed(t)

	q := &db.KNNQuery{
		Vector:  []float32{1, 0},
		K:       1,
		Filters: filter.And(filter.NewRange(domain.FieldTuition, filter.AtMost(20000))),
	}
	res, err := idx.SearchKNN(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].ID != "ger-001" {
		t.Fatalf("expected only ger-001, got %+v", res.Entries)
	}
}

func TestSearchKNN_DimensionMismatch(t *testing.T) {
	idx := seed(t)
	_, err := idx.SearchKNN(context.Background(), &db.KNNQuery{Vector: []float32{1, 0, 0}, K: 1})
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestUpsert_ReplacesAndDerivesSearchText(t *testing.T) {
	idx := seed(t)
	if err := idx.Upsert(Point{ID: "ger-001", Vector: []float32{1, 0}, Payload: map[string]any{
		"univ_name": "TU Munich", "program": "Informatics",
	}}); err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 3 {
		t.Fatalf("expected replace, got %d points", idx.Len())
	}

	res, _ := idx.SearchKNN(context.Background(), &db.KNNQuery{Vector: []float32{1, 0}, K: 1})
	if got := res.Entries[0].Payload[domain.FieldSearchText]; got != "TU Munich | Informatics" {
		t.Errorf("search_text = %v", got)
	}
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	idx, _ := New(3)
	if err := idx.Upsert(Point{ID: "x", Vector: []float32{1}}); err == nil {
		t.Fatal("expected error")
	}
}
