package domain

import (
	"strconv"
	"strings"
)

// Payload field names shared by the vector index and filters.
const (
	FieldUnivID         = "univ_id"
	FieldUnivName       = "univ_name"
	FieldCountry        = "country"
	FieldProgram        = "program"
	FieldLevel          = "level"
	FieldTuition        = "tuition_usd"
	FieldDeadline       = "deadline"
	FieldLanguage       = "language"
	FieldAcceptanceRate = "acceptance_rate"
	FieldScholarships   = "scholarship_tags"
	FieldResearchOutput = "research_output"
	FieldQSRanking      = "qs_ranking"
	FieldLivingCost     = "living_cost_monthly"
	FieldVisaDifficulty = "visa_difficulty"
	FieldEmploymentRate = "employment_rate_6mo"
	FieldAvgClassSize   = "avg_class_size"
	FieldDescription    = "description"
	FieldSearchText     = "search_text"
)

// SearchTextSeparator joins the parts of a record's embedded text.
const SearchTextSeparator = " | "

// ProgramRecord is one university program as stored in the vector index.
// Optional numeric fields are nil when absent or not coercible.
type ProgramRecord struct {
	UnivID            string   `json:"univ_id"`
	UnivName          string   `json:"univ_name"`
	Country           string   `json:"country"`
	Program           string   `json:"program"`
	Level             Level    `json:"level,omitempty"`
	TuitionUSD        *float64 `json:"tuition_usd,omitempty"`
	Deadline          string   `json:"deadline,omitempty"`
	Language          string   `json:"language,omitempty"`
	AcceptanceRate    *float64 `json:"acceptance_rate,omitempty"`
	ScholarshipTags   []string `json:"scholarship_tags,omitempty"`
	ResearchOutput    string   `json:"research_output,omitempty"`
	QSRanking         *int     `json:"qs_ranking,omitempty"`
	LivingCostMonthly *float64 `json:"living_cost_monthly,omitempty"`
	VisaDifficulty    string   `json:"visa_difficulty,omitempty"`
	EmploymentRate    *float64 `json:"employment_rate_6mo,omitempty"`
	AvgClassSize      *int     `json:"avg_class_size,omitempty"`
	Description       string   `json:"description,omitempty"`
	SearchText        string   `json:"-"`
}

// BuildSearchText derives the text embedded at index build time.
func BuildSearchText(univName, program, description string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{univName, program, description} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, SearchTextSeparator)
}

// Text implements filter.Fields.
func (r ProgramRecord) Text(key string) (string, bool) {
	var v string
	switch key {
	case FieldUnivID:
		v = r.UnivID
	case FieldCountry:
		v = r.Country
	case FieldLevel:
		v = string(r.Level)
	case FieldLanguage:
		v = r.Language
	case FieldProgram:
		v = r.Program
	}
	return v, v != ""
}

// Number implements filter.Fields.
func (r ProgramRecord) Number(key string) (float64, bool) {
	var p *float64
	switch key {
	case FieldTuition:
		p = r.TuitionUSD
	case FieldAcceptanceRate:
		p = r.AcceptanceRate
	case FieldLivingCost:
		p = r.LivingCostMonthly
	case FieldEmploymentRate:
		p = r.EmploymentRate
	case FieldQSRanking:
		if r.QSRanking != nil {
			return float64(*r.QSRanking), true
		}
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Label is the "University (Country)" display form.
func (r ProgramRecord) Label() string {
	if r.Country == "" {
		return r.UnivName
	}
	return r.UnivName + " (" + r.Country + ")"
}

// FormatUSD renders an optional amount as "$12,000" or "n/a".
func FormatUSD(v *float64) string {
	if v == nil {
		return "n/a"
	}
	s := strconv.FormatFloat(*v, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}
