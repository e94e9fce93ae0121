package domain

import (
	"github.com/mahendramedapati27/unimatch/internal/domain/search/filter"
)

// Category is the admission likelihood class of a match.
type Category string

// Categories ordered from least to most likely admission.
const (
	CategoryReach  Category = "reach"
	CategoryTarget Category = "target"
	CategorySafety Category = "safety"
)

// Categories lists all categories from reach to safety.
var Categories = []Category{CategoryReach, CategoryTarget, CategorySafety}

// Safer moves one tier toward safety.
func (c Category) Safer() Category {
	switch c {
	case CategoryReach:
		return CategoryTarget
	case CategoryTarget:
		return CategorySafety
	}
	return c
}

// Riskier moves one tier toward reach.
func (c Category) Riskier() Category {
	switch c {
	case CategorySafety:
		return CategoryTarget
	case CategoryTarget:
		return CategoryReach
	}
	return c
}

// ScoreBreakdown holds the per-factor scores behind a composite score.
type ScoreBreakdown struct {
	Similarity float64 `json:"similarity"`
	Financial  float64 `json:"financial"`
	Academic   float64 `json:"academic"`
}

// MatchResult is a program returned by search, annotated by the ranker.
type MatchResult struct {
	ProgramRecord
	SimilarityScore float64        `json:"similarity_score"`
	Category        Category       `json:"category,omitempty"`
	CompositeScore  float64        `json:"composite_score"`
	Scores          ScoreBreakdown `json:"scores"`
}

// SearchFilter is one relaxation step's constraint set. Absent fields mean no constraint.
type SearchFilter struct {
	Countries  []string `json:"countries,omitempty"`
	MaxTuition *float64 `json:"max_tuition,omitempty"`
	Level      Level    `json:"level,omitempty"`
}

// IsEmpty reports whether the filter constrains nothing.
func (f SearchFilter) IsEmpty() bool {
	return len(f.Countries) == 0 && f.MaxTuition == nil && f.Level == ""
}

// Expression converts the filter into an index filter expression.
func (f SearchFilter) Expression() filter.Expression {
	var conds []filter.Condition
	if len(f.Countries) > 0 {
		conds = append(conds, filter.MatchAny(FieldCountry, f.Countries...))
	}
	if f.MaxTuition != nil {
		conds = append(conds, filter.NewRange(FieldTuition, filter.AtMost(*f.MaxTuition)))
	}
	if f.Level != "" {
		conds = append(conds, filter.MatchAny(FieldLevel, string(f.Level)))
	}
	return filter.And(conds...)
}

// Severity ranks verification issues.
type Severity string

// Issue severities.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue is a verification finding about one shortlisted program.
type Issue struct {
	UnivID      string   `json:"univ_id"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}
