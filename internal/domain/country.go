package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// countryNames maps lower-case spellings onto the display form used in the catalogue.
var countryNames = map[string]string{
	"usa":                      "USA",
	"us":                       "USA",
	"united states":            "USA",
	"united states of america": "USA",
	"uk":                       "UK",
	"united kingdom":           "UK",
	"great britain":            "UK",
	"england":                  "UK",
	"germany":                  "Germany",
	"canada":                   "Canada",
	"australia":                "Australia",
	"netherlands":              "Netherlands",
	"the netherlands":          "Netherlands",
	"holland":                  "Netherlands",
	"sweden":                   "Sweden",
}

// CanonicalCountry returns the catalogue spelling of a country name.
// Unknown names are title-cased word by word; blank input yields "".
func CanonicalCountry(s string) string {
	k := strings.ToLower(strings.Join(strings.Fields(s), " "))
	if k == "" {
		return ""
	}
	if name, ok := countryNames[k]; ok {
		return name
	}
	words := strings.Fields(k)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func canonicalCountries(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, c := range in {
		c = CanonicalCountry(c)
		if _, ok := seen[c]; ok || c == "" {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
