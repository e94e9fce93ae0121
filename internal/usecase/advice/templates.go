package advice

import (
	"strings"
	"text/template"

	"github.com/mahendramedapati27/unimatch/internal/domain"
)

const researcherSystem = `You are a university research specialist with deep knowledge of visa
requirements, language tests and regional higher education systems. Answer
concisely and factually.`

const counselorSystem = `You are a seasoned university admissions counselor. You give clear,
empathetic and specific guidance and build realistic application timelines.`

const researcherPrompt = `Student from {{or .Origin "an unspecified country"}} applying for {{.Level.Title}} programs in {{countries .TargetCountries}}.
For each country describe:
- Visa type, processing time, financial proof
- Language requirements
- Application timeline
- Average cost of living
`

const counselorPrompt = `Create an advisory report for this student with these sections:

1. Personalized recommendation summary: why each program fits, strengths and challenges.
2. Application timeline for the next 12 months, month by month, with each program's deadline.
3. Financial planning: total cost (tuition plus living), scholarships, part-time work.
4. Preparation checklist: documents, test scores, recommendation letters, statement of purpose.
5. Next steps for the coming two weeks.

Student profile:
- Name: {{or .Profile.Name "n/a"}}
- Program: {{or .Profile.Program "n/a"}}
- Interests: {{join .Profile.Interests}}
- Career goals: {{or .Profile.CareerGoals "n/a"}}
- Level: {{.Profile.Level.Title}}
- Origin: {{or .Profile.Origin "n/a"}}
- Budget: {{usd .Profile.Budget}}
- Target countries: {{countries .Profile.TargetCountries}}

Matched programs:
{{range .Matches}}- {{.Label}}: {{.Program}}, {{.Category}}, tuition {{usd .TuitionUSD}}/yr, living {{usd .LivingCostMonthly}}/mo, deadline {{or .Deadline "n/a"}}
{{else}}- none
{{end}}
Make the advice practical, encouraging and specific.
`

const enrichmentFallback = `General guidance for a student from {{or .Origin "an unspecified country"}} applying for {{.Level.Title}} programs in {{countries .TargetCountries}}:
- Visa: check the student visa category for each country, allow 4 to 12 weeks for processing and prepare proof of funds.
- Language: most programs ask for IELTS or TOEFL unless taught in your native language.
- Timeline: start applications 9 to 12 months before the intended intake.
- Cost of living: budget separately for rent, insurance and transport in addition to tuition.
`

const planFallback = `Application plan{{with .Profile.Name}} for {{.}}{{end}}

Shortlist:
{{range $i, $m := .Matches}}{{inc $i}}. {{$m.Label}}: {{$m.Program}} [{{$m.Category}}]
   Tuition {{usd $m.TuitionUSD}}/yr, living {{usd $m.LivingCostMonthly}}/mo, deadline {{or $m.Deadline "n/a"}}
{{else}}No matching programs were found.
{{end}}
Timeline:
- Months 1-2: book language tests, shortlist recommenders, draft the statement of purpose.
- Months 3-5: gather transcripts and certificates, finalize essays.
- Months 6-8: submit applications ahead of each deadline above.
- Months 9-12: compare offers, arrange funding and apply for the student visa.

Next steps:
- Confirm deadlines on each program's official page.
- Estimate total yearly cost as tuition plus 12 months of living costs against a budget of {{usd .Profile.Budget}}.
`

var funcs = template.FuncMap{
	"join": func(s []string) string {
		if len(s) == 0 {
			return "n/a"
		}
		return strings.Join(s, ", ")
	},
	"countries": func(s []string) string {
		if len(s) == 0 {
			return "any country"
		}
		return strings.Join(s, ", ")
	},
	"usd": domain.FormatUSD,
	"inc": func(i int) int { return i + 1 },
}

var (
	researcherTmpl = template.Must(template.New("researcher").Funcs(funcs).Parse(researcherPrompt))
	counselorTmpl  = template.Must(template.New("counselor").Funcs(funcs).Parse(counselorPrompt))
	enrichmentTmpl = template.Must(template.New("enrichment").Funcs(funcs).Parse(enrichmentFallback))
	planTmpl       = template.Must(template.New("plan").Funcs(funcs).Parse(planFallback))
)

type planData struct {
	Profile domain.Profile
	Matches []domain.MatchResult
}

func render(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return ""
	}
	return b.String()
}
