// Package verify flags deadline, cost and scholarship concerns on shortlisted programs.
package verify

import (
	"fmt"
	"strings"
	"time"

	"github.com/mahendramedapati27/unimatch/internal/domain"
)

const (
	dateLayout = "2006-01-02"

	urgentWithin      = 30 * 24 * time.Hour
	approachingWithin = 90 * 24 * time.Hour

	// Cost checks flag values below lowFactor×min or above highFactor×max of the typical range.
	lowFactor  = 0.5
	highFactor = 1.5

	minMeritGPA   = 3.5
	maxNeedBudget = 40000
)

// Verifier checks shortlisted matches against a student profile.
type Verifier struct {
	now func() time.Time
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) { v.now = now }
}

// New creates a Verifier.
func New(opts ...Option) *Verifier {
	v := &Verifier{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify returns the issues found across all matches, in match order.
func (v *Verifier) Verify(p domain.Profile, matches []domain.MatchResult) []domain.Issue {
	today := v.now().UTC().Truncate(24 * time.Hour)

	var issues []domain.Issue
	for _, m := range matches {
		issues = append(issues, v.deadline(m.ProgramRecord, today)...)
		issues = append(issues, costs(m.ProgramRecord)...)
		issues = append(issues, scholarships(m.ProgramRecord, p)...)
	}
	return issues
}

func (v *Verifier) deadline(r domain.ProgramRecord, today time.Time) []domain.Issue {
	if r.Deadline == "" {
		return []domain.Issue{issue(r, domain.SeverityLow, "No application deadline listed")}
	}
	d, err := time.Parse(dateLayout, r.Deadline)
	if err != nil {
		return []domain.Issue{issue(r, domain.SeverityHigh, "Could not parse deadline %q", r.Deadline)}
	}

	left := d.Sub(today)
	days := int(left.Hours() / 24)
	switch {
	case left < 0:
		return []domain.Issue{issue(r, domain.SeverityHigh, "Deadline passed %d days ago", -days)}
	case left < urgentWithin:
		return []domain.Issue{issue(r, domain.SeverityMedium, "Only %d days until the deadline", days)}
	case left < approachingWithin:
		return []domain.Issue{issue(r, domain.SeverityLow, "%d days until the deadline", days)}
	}
	return nil
}

func costs(r domain.ProgramRecord) []domain.Issue {
	country := countryKey(r.Country)
	var out []domain.Issue

	if t := r.TuitionUSD; t != nil {
		if rng, ok := tuitionRanges[country][r.Level]; ok {
			switch {
			case *t < rng.min*lowFactor:
				out = append(out, issue(r, domain.SeverityMedium,
					"Tuition (%s) seems unusually low for %s", domain.FormatUSD(t), r.Country))
			case *t > rng.max*highFactor:
				out = append(out, issue(r, domain.SeverityMedium,
					"Tuition (%s) seems unusually high for %s", domain.FormatUSD(t), r.Country))
			}
		}
	}

	if l := r.LivingCostMonthly; l != nil {
		if rng, ok := livingRanges[country]; ok {
			switch {
			case *l < rng.min*lowFactor:
				out = append(out, issue(r, domain.SeverityMedium,
					"Living cost (%s/mo) seems too low for %s", domain.FormatUSD(l), r.Country))
			case *l > rng.max*highFactor:
				out = append(out, issue(r, domain.SeverityMedium,
					"Living cost (%s/mo) seems too high for %s", domain.FormatUSD(l), r.Country))
			}
		}
	}
	return out
}

func scholarships(r domain.ProgramRecord, p domain.Profile) []domain.Issue {
	var out []domain.Issue
	for _, tag := range r.ScholarshipTags {
		t := strings.ToLower(tag)
		if t == "none" {
			continue
		}
		if strings.Contains(t, "commonwealth") && !isCommonwealth(p.Origin) {
			out = append(out, issue(r, domain.SeverityMedium,
				"%s is typically limited to Commonwealth countries", tag))
		}
		if strings.Contains(t, "merit") && p.GPA != nil && *p.GPA < minMeritGPA {
			out = append(out, issue(r, domain.SeverityMedium,
				"%s typically requires a GPA above %.1f", tag, minMeritGPA))
		}
		if strings.Contains(t, "need") && p.Budget != nil && *p.Budget > maxNeedBudget {
			out = append(out, issue(r, domain.SeverityMedium,
				"%s is typically for students with lower budgets", tag))
		}
	}
	return out
}

func isCommonwealth(origin string) bool {
	_, ok := commonwealthOrigins[strings.ToLower(strings.TrimSpace(origin))]
	return ok
}

func countryKey(country string) string {
	return strings.ToLower(domain.CanonicalCountry(country))
}

func issue(r domain.ProgramRecord, s domain.Severity, format string, args ...any) domain.Issue {
	return domain.Issue{UnivID: r.UnivID, Severity: s, Description: fmt.Sprintf(format, args...)}
}
