package ranking

import (
	"sort"

	"github.com/mahendramedapati27/unimatch/internal/domain"
)

// Balance selects the shortlist from ranked matches. Each category gets its
// share of max(ShortlistSize, MinTotal) slots by largest remainder, capped at
// the number of candidates; slots a category cannot fill go to the best
// remaining records of any category. Output is grouped reach, target, safety,
// each in descending composite order.
func (r *Ranker) Balance(ms []domain.MatchResult) []domain.MatchResult {
	total := max(r.cfg.ShortlistSize, r.cfg.MinTotal)
	total = min(total, len(ms))
	if total == 0 {
		return nil
	}

	order := make([]int, len(ms))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ms[order[a]].CompositeScore > ms[order[b]].CompositeScore
	})

	quotas := r.quotas(total)
	picked := make([]bool, len(ms))
	taken := make(map[domain.Category]int, len(domain.Categories))
	n := 0
	for _, i := range order {
		c := categoryOf(ms[i])
		if taken[c] < quotas[c] {
			picked[i] = true
			taken[c]++
			n++
		}
	}
	for _, i := range order {
		if n == total {
			break
		}
		if !picked[i] {
			picked[i] = true
			n++
		}
	}

	out := make([]domain.MatchResult, 0, total)
	for _, c := range domain.Categories {
		for _, i := range order {
			if picked[i] && categoryOf(ms[i]) == c {
				out = append(out, ms[i])
			}
		}
	}
	return out
}

// quotas splits total across categories by the largest remainder method.
func (r *Ranker) quotas(total int) map[domain.Category]int {
	var sum float64
	for _, c := range domain.Categories {
		sum += r.cfg.share(c)
	}

	type rem struct {
		cat  domain.Category
		frac float64
	}
	quotas := make(map[domain.Category]int, len(domain.Categories))
	rems := make([]rem, 0, len(domain.Categories))
	assigned := 0
	for _, c := range domain.Categories {
		exact := float64(total) * r.cfg.share(c) / sum
		whole := int(exact)
		quotas[c] = whole
		assigned += whole
		rems = append(rems, rem{cat: c, frac: exact - float64(whole)})
	}
	sort.SliceStable(rems, func(i, j int) bool { return rems[i].frac > rems[j].frac })
	for i := 0; assigned < total; i++ {
		quotas[rems[i%len(rems)].cat]++
		assigned++
	}
	return quotas
}

func categoryOf(m domain.MatchResult) domain.Category {
	switch m.Category {
	case domain.CategoryReach, domain.CategorySafety:
		return m.Category
	}
	return domain.CategoryTarget
}
