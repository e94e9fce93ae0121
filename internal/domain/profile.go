package domain

import (
	"strings"

	"github.com/mahendramedapati27/unimatch/internal/domain/coerce"
)

// Level is a degree level. The empty Level means unspecified.
type Level string

// Degree levels.
const (
	LevelBachelors Level = "bachelors"
	LevelMasters   Level = "masters"
	LevelPhD       Level = "phd"
)

// ParseLevel maps free-form level text onto a Level. Unknown text yields "".
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bachelors", "bachelor", "bachelor's", "undergraduate", "bsc", "ba":
		return LevelBachelors
	case "masters", "master", "master's", "msc", "ma", "graduate":
		return LevelMasters
	case "phd", "ph.d", "ph.d.", "doctorate", "doctoral":
		return LevelPhD
	}
	return ""
}

// Title returns the display form of the level.
func (l Level) Title() string {
	switch l {
	case LevelBachelors:
		return "Bachelors"
	case LevelMasters:
		return "Masters"
	case LevelPhD:
		return "PhD"
	}
	return "any level"
}

// ProfileInput is the raw student input as it arrives from a form, a file or an
// HTTP body. Interests and target countries may be a delimited string or a list;
// budget and gpa may be numbers or numeric strings.
type ProfileInput struct {
	Name            string `json:"name"`
	Program         string `json:"program"`
	Interests       any    `json:"interests"`
	CareerGoals     string `json:"career_goals"`
	TargetCountries any    `json:"target_countries"`
	Budget          any    `json:"budget"`
	Level           string `json:"level"`
	Origin          string `json:"origin"`
	GPA             any    `json:"gpa"`
	WorkExperience  string `json:"work_experience"`
}

// Profile is the normalized student profile. It is built once per pipeline run
// and never mutated afterwards.
type Profile struct {
	Name            string   `json:"name"`
	Program         string   `json:"program"`
	Interests       []string `json:"interests"`
	CareerGoals     string   `json:"career_goals,omitempty"`
	TargetCountries []string `json:"target_countries"`
	Budget          *float64 `json:"budget,omitempty"`
	Level           Level    `json:"level,omitempty"`
	Origin          string   `json:"origin,omitempty"`
	GPA             *float64 `json:"gpa,omitempty"`
	WorkExperience  string   `json:"work_experience,omitempty"`
}

// NewProfile normalizes raw input. A negative budget or gpa is treated as absent.
func NewProfile(in ProfileInput) Profile {
	p := Profile{
		Name:            strings.TrimSpace(in.Name),
		Program:         strings.TrimSpace(in.Program),
		Interests:       coerce.Set(in.Interests),
		CareerGoals:     strings.TrimSpace(in.CareerGoals),
		TargetCountries: canonicalCountries(coerce.Set(in.TargetCountries)),
		Level:           ParseLevel(in.Level),
		Origin:          strings.TrimSpace(in.Origin),
		WorkExperience:  strings.TrimSpace(in.WorkExperience),
	}
	if b := coerce.FloatPtr(in.Budget); b != nil && *b >= 0 {
		p.Budget = b
	}
	if g := coerce.FloatPtr(in.GPA); g != nil && *g >= 0 {
		p.GPA = g
	}
	return p
}
