package program

import (
	"context"
	"fmt"
	"strings"

	"github.com/mahendramedapati27/unimatch/internal/db"
	"github.com/mahendramedapati27/unimatch/internal/domain"
	"github.com/mahendramedapati27/unimatch/internal/domain/coerce"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.Repository over a vector index collection.
type Repo struct {
	store      store
	collection string
}

// New creates a program repository.
func New(s store, collection string) *Repo {
	return &Repo{store: s, collection: collection}
}

// Search runs a filtered similarity search and decodes every hit into a typed
// match. Index order is preserved.
func (r *Repo) Search(
	ctx context.Context, vector []float32, f domain.SearchFilter, limit int,
) ([]domain.MatchResult, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		Collection: r.collection,
		Filters:    f.Expression(),
		Vector:     vector,
		K:          limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.collection, err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	matches := make([]domain.MatchResult, len(sr.Entries))
	for i, e := range sr.Entries {
		rec := Decode(e.Payload)
		if rec.UnivID == "" {
			rec.UnivID = e.ID
		}
		matches[i] = domain.MatchResult{ProgramRecord: rec, SimilarityScore: e.Score}
	}
	return matches, nil
}

// Decode converts a raw payload into a ProgramRecord. Numeric strings become
// numbers, scalar or delimited scholarship tags become a set, and values that
// cannot be coerced are left absent.
func Decode(p map[string]any) domain.ProgramRecord {
	return domain.ProgramRecord{
		UnivID:            coerce.String(p[domain.FieldUnivID]),
		UnivName:          coerce.String(p[domain.FieldUnivName]),
		Country:           domain.CanonicalCountry(coerce.String(p[domain.FieldCountry])),
		Program:           coerce.String(p[domain.FieldProgram]),
		Level:             domain.ParseLevel(coerce.String(p[domain.FieldLevel])),
		TuitionUSD:        coerce.FloatPtr(p[domain.FieldTuition]),
		Deadline:          coerce.String(p[domain.FieldDeadline]),
		Language:          coerce.String(p[domain.FieldLanguage]),
		AcceptanceRate:    rate(p[domain.FieldAcceptanceRate]),
		ScholarshipTags:   coerce.Set(p[domain.FieldScholarships]),
		ResearchOutput:    coerce.String(p[domain.FieldResearchOutput]),
		QSRanking:         coerce.IntPtr(p[domain.FieldQSRanking]),
		LivingCostMonthly: coerce.FloatPtr(p[domain.FieldLivingCost]),
		VisaDifficulty:    coerce.String(p[domain.FieldVisaDifficulty]),
		EmploymentRate:    rate(p[domain.FieldEmploymentRate]),
		AvgClassSize:      coerce.IntPtr(p[domain.FieldAvgClassSize]),
		Description:       coerce.String(p[domain.FieldDescription]),
		SearchText:        coerce.String(p[domain.FieldSearchText]),
	}
}

// rate accepts fractions and percentages ("30" or "30%" read as 0.30).
// Values outside [0, 100] are absent.
func rate(v any) *float64 {
	percent := false
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if strings.HasSuffix(s, "%") {
			percent = true
			v = strings.TrimSuffix(s, "%")
		}
	}
	f, ok := coerce.Float(v)
	if !ok || f < 0 || f > 100 {
		return nil
	}
	if percent || f > 1 {
		f /= 100
	}
	return &f
}
