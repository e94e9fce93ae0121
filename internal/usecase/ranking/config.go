package ranking

import "github.com/mahendramedapati27/unimatch/internal/domain"

// Config holds scoring weights, category cutoffs and the shortlist shape.
type Config struct {
	SimilarityWeight float64
	FinancialWeight  float64
	AcademicWeight   float64

	// BudgetDecayCeiling is the budget multiple at which financial fit reaches zero.
	BudgetDecayCeiling float64

	// Acceptance rate below ReachBelow is reach, at or above SafetyFrom is safety.
	ReachBelow float64
	SafetyFrom float64

	// A composite at or above PromoteAt moves one tier toward safety,
	// at or below DemoteAt one tier toward reach.
	PromoteAt float64
	DemoteAt  float64

	ReachShare  float64
	TargetShare float64
	SafetyShare float64

	ShortlistSize int
	MinTotal      int
}

// DefaultConfig returns the stock ranker configuration.
func DefaultConfig() Config {
	return Config{
		SimilarityWeight:   0.45,
		FinancialWeight:    0.30,
		AcademicWeight:     0.25,
		BudgetDecayCeiling: 1.5,
		ReachBelow:         0.15,
		SafetyFrom:         0.35,
		PromoteAt:          0.90,
		DemoteAt:           0.30,
		ReachShare:         0.30,
		TargetShare:        0.40,
		SafetyShare:        0.30,
		ShortlistSize:      10,
		MinTotal:           5,
	}
}

// validWeights reports whether the weights are non-negative with a positive sum.
func (c *Config) validWeights() bool {
	if c.SimilarityWeight < 0 || c.FinancialWeight < 0 || c.AcademicWeight < 0 {
		return false
	}
	return c.SimilarityWeight+c.FinancialWeight+c.AcademicWeight > 0
}

// ApplyDefaults fills empty fields with default values. Weights that are
// negative or sum to zero are replaced as a set.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if !c.validWeights() {
		c.SimilarityWeight, c.FinancialWeight, c.AcademicWeight = d.SimilarityWeight, d.FinancialWeight, d.AcademicWeight
	}
	if c.BudgetDecayCeiling <= 1 {
		c.BudgetDecayCeiling = d.BudgetDecayCeiling
	}
	if c.ReachBelow <= 0 {
		c.ReachBelow = d.ReachBelow
	}
	if c.SafetyFrom <= 0 {
		c.SafetyFrom = d.SafetyFrom
	}
	if c.SafetyFrom < c.ReachBelow {
		c.SafetyFrom = c.ReachBelow
	}
	if c.PromoteAt <= 0 {
		c.PromoteAt = d.PromoteAt
	}
	if c.DemoteAt <= 0 {
		c.DemoteAt = d.DemoteAt
	}
	if c.ReachShare+c.TargetShare+c.SafetyShare <= 0 {
		c.ReachShare, c.TargetShare, c.SafetyShare = d.ReachShare, d.TargetShare, d.SafetyShare
	}
	if c.ShortlistSize <= 0 {
		c.ShortlistSize = d.ShortlistSize
	}
	if c.MinTotal <= 0 {
		c.MinTotal = d.MinTotal
	}
}

func (c Config) share(cat domain.Category) float64 {
	switch cat {
	case domain.CategoryReach:
		return c.ReachShare
	case domain.CategoryTarget:
		return c.TargetShare
	case domain.CategorySafety:
		return c.SafetyShare
	}
	return 0
}
