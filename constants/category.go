package constants

import (
	"strings"
	"unicode"
)

type Category string

const (
	Environmental Category = "Environmental"
	Social        Category = "Social"
	Governance    Category = "Governance"
)

// DefaultCategory is the bucket for missing or unrecognized labels.
// Coercing everything unknown to Environmental is established behavior
// that downstream comparisons depend on.
const DefaultCategory = Environmental

var allCategories = []Category{
	Environmental,
	Social,
	Governance,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize capitalizes the label (first rune upper, rest lower) and
// checks it against the ESG taxonomy. The second return reports whether the
// input matched; callers get DefaultCategory either way.
func Canonicalize(input string) (Category, bool) {
	capitalized := capitalize(strings.TrimSpace(input))
	for _, cat := range allCategories {
		if capitalized == string(cat) {
			return cat, true
		}
	}
	return DefaultCategory, false
}

// IsValid reports whether label, compared case-insensitively, names one of
// the three ESG categories.
func IsValid(label string) bool {
	_, ok := Canonicalize(label)
	return ok
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
