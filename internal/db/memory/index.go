// Package memory provides a brute-force in-memory vector index for tests and
// local runs without a Qdrant instance.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/mahendramedapati27/unimatch/internal/db"
	"github.com/mahendramedapati27/unimatch/internal/domain"
	"github.com/mahendramedapati27/unimatch/internal/domain/coerce"
)

var _ db.VectorIndex = (*Index)(nil)

// Point is a stored vector with its payload.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]any
}

// Index is an in-memory vector index using cosine similarity.
type Index struct {
	dimensions int
	mu         sync.RWMutex
	points     []Point
}

// New creates an empty index with the given dimension.
func New(dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &Index{dimensions: dimensions}, nil
}

// Upsert adds points, replacing any with the same ID. A payload without
// search_text gets one derived from univ_name, program and description.
func (m *Index) Upsert(points ...Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range points {
		if len(p.Vector) != m.dimensions {
			return fmt.Errorf("vector dimension mismatch: got %d, expected %d", len(p.Vector), m.dimensions)
		}
		vec := make([]float32, m.dimensions)
		copy(vec, p.Vector)
		payload := make(map[string]any, len(p.Payload)+1)
		for k, v := range p.Payload {
			payload[k] = v
		}
		if _, ok := payload[domain.FieldSearchText]; !ok {
			payload[domain.FieldSearchText] = domain.BuildSearchText(
				coerce.String(payload[domain.FieldUnivName]),
				coerce.String(payload[domain.FieldProgram]),
				coerce.String(payload[domain.FieldDescription]),
			)
		}
		stored := Point{ID: p.ID, Vector: vec, Payload: payload}

		replaced := false
		for i := range m.points {
			if m.points[i].ID == p.ID {
				m.points[i] = stored
				replaced = true
				break
			}
		}
		if !replaced {
			m.points = append(m.points, stored)
		}
	}
	return nil
}

// Len returns the number of stored points.
func (m *Index) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.points)
}

// SearchKNN returns the top-k filtered points by cosine similarity. Ties keep insertion order.
func (m *Index) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if len(q.Vector) != m.dimensions {
		return nil, &db.Error{
			Op:  db.OpSearch,
			Err: fmt.Errorf("query dimension mismatch: got %d, expected %d", len(q.Vector), m.dimensions),
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]db.SearchEntry, 0, len(m.points))
	for _, p := range m.points {
		if !q.Filters.Evaluate(payloadFields(p.Payload)) {
			continue
		}
		entries = append(entries, db.SearchEntry{
			ID:      p.ID,
			Score:   cosine(q.Vector, p.Vector),
			Payload: p.Payload,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })

	if q.K > 0 && len(entries) > q.K {
		entries = entries[:q.K]
	}
	return &db.SearchResult{Entries: entries}, nil
}

// Ping always succeeds.
func (m *Index) Ping(context.Context) error { return nil }

// WaitForReady returns immediately.
func (m *Index) WaitForReady(context.Context, time.Duration) error { return nil }

// Close is a no-op.
func (m *Index) Close() error { return nil }

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// payloadFields evaluates filters against a raw payload with lenient coercion.
type payloadFields map[string]any

func (p payloadFields) Text(key string) (string, bool) {
	s := coerce.String(p[key])
	return s, s != ""
}

func (p payloadFields) Number(key string) (float64, bool) {
	return coerce.Float(p[key])
}
