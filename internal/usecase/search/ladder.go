package search

import "github.com/mahendramedapati27/unimatch/internal/domain"

// BudgetBuffer widens the tuition ceiling of the strictest step.
const BudgetBuffer = 1.2

// Step is one rung of the relaxation ladder.
type Step struct {
	Name  string
	Build func(p domain.Profile) domain.SearchFilter
}

// Ladder returns the relaxation steps from strictest to unfiltered. Absent
// profile fields contribute no constraint.
func Ladder() []Step {
	return []Step{
		{
			Name: "countries+budget+level",
			Build: func(p domain.Profile) domain.SearchFilter {
				return domain.SearchFilter{Countries: p.TargetCountries, MaxTuition: budgetCeiling(p), Level: p.Level}
			},
		},
		{
			Name: "countries+level",
			Build: func(p domain.Profile) domain.SearchFilter {
				return domain.SearchFilter{Countries: p.TargetCountries, Level: p.Level}
			},
		},
		{
			Name: "level",
			Build: func(p domain.Profile) domain.SearchFilter {
				return domain.SearchFilter{Level: p.Level}
			},
		},
		{
			Name: "countries",
			Build: func(p domain.Profile) domain.SearchFilter {
				return domain.SearchFilter{Countries: p.TargetCountries}
			},
		},
		{
			Name: "unfiltered",
			Build: func(domain.Profile) domain.SearchFilter {
				return domain.SearchFilter{}
			},
		},
	}
}

func budgetCeiling(p domain.Profile) *float64 {
	if p.Budget == nil {
		return nil
	}
	ceiling := *p.Budget * BudgetBuffer
	return &ceiling
}
