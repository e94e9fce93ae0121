package filter

import (
	"fmt"
	"strings"
)

// Expression is a conjunction of conditions. The empty expression matches everything.
type Expression struct {
	must []Condition
}

// And builds an expression requiring every condition.
func And(conds ...Condition) Expression {
	return Expression{must: conds}
}

// Must returns the conditions.
func (e Expression) Must() []Condition { return e.must }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.must) == 0 }

// Fields exposes the filterable values of a record. ok is false when the field
// is absent or could not be coerced.
type Fields interface {
	Text(key string) (string, bool)
	Number(key string) (float64, bool)
}

// Evaluate reports whether f satisfies every condition. A condition whose
// field is absent on f is skipped rather than failed.
func (e Expression) Evaluate(f Fields) bool {
	for _, c := range e.must {
		if !c.Evaluate(f) {
			return false
		}
	}
	return true
}

// String renders the expression for logs.
func (e Expression) String() string {
	if e.IsEmpty() {
		return "none"
	}
	parts := make([]string, len(e.must))
	for i, c := range e.must {
		parts[i] = c.String()
	}
	return strings.Join(parts, " AND ")
}

// Condition is a single filter clause: either a match against a value set or a numeric range.
type Condition struct {
	key       string
	values    []string
	rangeExpr *Range
}

// MatchAny creates a condition matching any of values.
func MatchAny(key string, values ...string) Condition {
	return Condition{key: key, values: values}
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) Condition {
	return Condition{key: key, rangeExpr: &r}
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Values returns the accepted values of a match condition.
func (c Condition) Values() []string { return c.values }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// IsMatch reports whether this is a match condition.
func (c Condition) IsMatch() bool { return len(c.values) > 0 }

// IsRange reports whether this is a range condition.
func (c Condition) IsRange() bool { return c.rangeExpr != nil }

// Evaluate reports whether f satisfies the condition. Text comparison ignores case.
func (c Condition) Evaluate(f Fields) bool {
	switch {
	case c.IsRange():
		v, ok := f.Number(c.key)
		if !ok {
			return true
		}
		return c.rangeExpr.Contains(v)
	case c.IsMatch():
		v, ok := f.Text(c.key)
		if !ok {
			return true
		}
		for _, want := range c.values {
			if strings.EqualFold(v, want) {
				return true
			}
		}
		return false
	}
	return true
}

func (c Condition) String() string {
	if c.IsRange() {
		return c.key + " " + c.rangeExpr.String()
	}
	if len(c.values) == 1 {
		return fmt.Sprintf("%s = %s", c.key, c.values[0])
	}
	return fmt.Sprintf("%s IN [%s]", c.key, strings.Join(c.values, ", "))
}

// Range is a numeric range with gt/gte/lt/lte boundaries.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewRangeFilter validates and creates a Range.
// At least one boundary required. gt/gte and lt/lte are mutually exclusive.
func NewRangeFilter(gt, gte, lt, lte *float64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range boundary is required")
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("cannot specify both gt and gte")
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("cannot specify both lt and lte")
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// AtMost is the inclusive upper-bound range used for price ceilings.
func AtMost(v float64) Range {
	return Range{lte: &v}
}

// GT returns the lower exclusive bound.
func (r Range) GT() *float64 { return r.gt }

// GTE returns the lower inclusive bound.
func (r Range) GTE() *float64 { return r.gte }

// LT returns the upper exclusive bound.
func (r Range) LT() *float64 { return r.lt }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *float64 { return r.lte }

// Contains reports whether v lies within every set boundary.
func (r Range) Contains(v float64) bool {
	if r.gt != nil && v <= *r.gt {
		return false
	}
	if r.gte != nil && v < *r.gte {
		return false
	}
	if r.lt != nil && v >= *r.lt {
		return false
	}
	if r.lte != nil && v > *r.lte {
		return false
	}
	return true
}

func (r Range) String() string {
	var parts []string
	if r.gt != nil {
		parts = append(parts, fmt.Sprintf("> %g", *r.gt))
	}
	if r.gte != nil {
		parts = append(parts, fmt.Sprintf(">= %g", *r.gte))
	}
	if r.lt != nil {
		parts = append(parts, fmt.Sprintf("< %g", *r.lt))
	}
	if r.lte != nil {
		parts = append(parts, fmt.Sprintf("<= %g", *r.lte))
	}
	return strings.Join(parts, " ")
}
