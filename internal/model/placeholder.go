package model

import (
	"regexp"
	"strings"
)

// Placeholder markers left behind by earlier enrichment attempts and legacy
// spreadsheet exports. Matching is case-insensitive over the whole field.
var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)no description available`),
	regexp.MustCompile(`(?i)web search performed`),
	regexp.MustCompile(`(?i)unknown\s*[—–-]\s*needs\s*manual\s*review`),
	regexp.MustCompile(`(?i)this workout can be researched`),
	regexp.MustCompile(`(?i)\[ai generated`),
	regexp.MustCompile(`(?i)\bplaceholder\b`),
	regexp.MustCompile(`(?i)\btbd\b`),
}

// Literal junk values that mean "empty" when a spreadsheet cell round-trips
// through too many tools.
var emptyLiterals = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
	"null": {},
	"n/a":  {},
}

// IsEmpty reports whether a field value carries no real content.
func IsEmpty(s string) bool {
	_, ok := emptyLiterals[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// IsPlaceholder reports whether a field value matches a known placeholder
// marker.
func IsPlaceholder(s string) bool {
	for _, re := range placeholderPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// IsEmptyOrPlaceholder is the merge rule's "base has no usable value" test.
func IsEmptyOrPlaceholder(s string) bool {
	return IsEmpty(s) || IsPlaceholder(s)
}

// MissingFields returns the enrichable fields of a record that are empty or
// placeholder-valued, in EnrichableFields order.
func MissingFields(w *WorkoutRecord) []string {
	var missing []string
	for _, f := range EnrichableFields {
		if IsEmptyOrPlaceholder(w.TextField(f)) {
			missing = append(missing, f)
		}
	}
	return missing
}
