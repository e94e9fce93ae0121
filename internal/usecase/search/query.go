package search

import (
	"strings"
	"unicode"

	"github.com/mahendramedapati27/unimatch/internal/domain"
)

const (
	maxGoalKeywords = 8
	minKeywordLen   = 3
	// fallbackQuery is embedded when the profile carries no free text at all.
	fallbackQuery = "university degree programs for international students"
)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {}, "from": {}, "into": {},
	"want": {}, "would": {}, "like": {}, "become": {}, "work": {}, "working": {}, "career": {},
	"have": {}, "are": {}, "was": {}, "were": {}, "been": {}, "being": {}, "will": {},
	"can": {}, "could": {}, "should": {}, "about": {}, "after": {}, "before": {}, "some": {},
	"such": {}, "them": {}, "they": {}, "their": {}, "there": {}, "then": {}, "than": {},
	"also": {}, "just": {}, "more": {}, "most": {}, "other": {}, "over": {}, "very": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "while": {}, "who": {}, "why": {},
	"how": {}, "all": {}, "any": {}, "our": {}, "your": {}, "you": {}, "his": {}, "her": {},
	"its": {}, "not": {}, "but": {}, "one": {}, "get": {}, "goal": {}, "goals": {}, "plan": {},
	"hope": {}, "eventually": {}, "field": {}, "industry": {}, "role": {}, "job": {},
}

// BuildQuery renders the text embedded for a profile: the program, the
// comma-joined interests and keyword tokens pulled from the career goals.
func BuildQuery(p domain.Profile) string {
	var parts []string
	if p.Program != "" {
		parts = append(parts, "Program: "+p.Program)
	}
	if len(p.Interests) > 0 {
		parts = append(parts, "Interests: "+strings.Join(p.Interests, ", "))
	}
	if kw := GoalKeywords(p.CareerGoals); len(kw) > 0 {
		parts = append(parts, "Goals: "+strings.Join(kw, " "))
	}
	if len(parts) == 0 {
		return fallbackQuery
	}
	return strings.Join(parts, domain.SearchTextSeparator)
}

// GoalKeywords lower-cases goals, splits on non-alphanumerics and keeps unique
// tokens that are long enough and not stopwords, in order of appearance.
func GoalKeywords(goals string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(goals), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(tokens))
	var out []string
	for _, tok := range tokens {
		if len([]rune(tok)) < minKeywordLen {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
		if len(out) == maxGoalKeywords {
			break
		}
	}
	return out
}
