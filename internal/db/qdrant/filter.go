package qdrant

import (
	"strings"
	"unicode"
	"unicode/utf8"

	pb "github.com/qdrant/go-client/qdrant"

	"github.com/mahendramedapati27/unimatch/internal/domain/search/filter"
)

// buildFilter converts an Expression to a Qdrant filter. Returns nil for an empty expression.
func buildFilter(expr filter.Expression) *pb.Filter {
	if expr.IsEmpty() {
		return nil
	}
	must := make([]*pb.Condition, 0, len(expr.Must()))
	for _, c := range expr.Must() {
		if fc := fieldCondition(c); fc != nil {
			must = append(must, &pb.Condition{ConditionOneOf: &pb.Condition_Field{Field: fc}})
		}
	}
	return &pb.Filter{Must: must}
}

func fieldCondition(c filter.Condition) *pb.FieldCondition {
	switch {
	case c.IsRange():
		r := c.Range()
		return &pb.FieldCondition{
			Key: c.Key(),
			Range: &pb.Range{
				Gt:  r.GT(),
				Gte: r.GTE(),
				Lt:  r.LT(),
				Lte: r.LTE(),
			},
		}
	case c.IsMatch():
		values := keywordVariants(c.Values())
		if len(values) == 1 {
			return &pb.FieldCondition{
				Key:   c.Key(),
				Match: &pb.Match{MatchValue: &pb.Match_Keyword{Keyword: values[0]}},
			}
		}
		return &pb.FieldCondition{
			Key:   c.Key(),
			Match: &pb.Match{MatchValue: &pb.Match_Keywords{Keywords: &pb.RepeatedStrings{Strings: values}}},
		}
	}
	return nil
}

// keywordVariants widens each value to its common casings. Qdrant keyword
// matches are exact; candidates are re-checked case-insensitively afterwards.
func keywordVariants(values []string) []string {
	out := make([]string, 0, len(values)*3)
	seen := make(map[string]struct{}, len(values)*3)
	add := func(v string) {
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, v := range values {
		lower := strings.ToLower(v)
		add(v)
		add(lower)
		add(titleFirst(lower))
		add(strings.ToUpper(v))
	}
	return out
}

func titleFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
