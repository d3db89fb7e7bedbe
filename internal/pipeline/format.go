package pipeline

import (
	"maps"
	"regexp"
	"sort"
	"strings"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// DefaultMinContentLength is the shortest Description that can clear a
// needsRevalidation flag.
const DefaultMinContentLength = 40

var (
	headingRE     = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	labelPrefixRE = regexp.MustCompile(`(?i)^\**\s*(?:Description|Coach\s*Notes?)\s*\**\s*:\s*\**\s*`)
	boldRE        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	underlineRE   = regexp.MustCompile(`__(.+?)__`)
	leadBulletRE  = regexp.MustCompile(`^[-*]\s+`)
	blankLinesRE  = regexp.MustCompile(`\n\s*\n+`)
)

// FormatQuality is the markdown→prose pass: field text loses its markdown
// dressing, Estimated_Times_Human is derived, and revalidation flags are
// cleared once the content has earned it.
func FormatQuality(records []model.WorkoutRecord, minContentLength int) []model.WorkoutRecord {
	if minContentLength <= 0 {
		minContentLength = DefaultMinContentLength
	}

	out := make([]model.WorkoutRecord, len(records))
	copy(out, records)

	for i := range out {
		rec := &out[i]
		rec.Changes = maps.Clone(rec.Changes)

		for _, field := range model.TextFieldNames {
			val := rec.TextField(field)
			cleaned := CleanProse(val)
			if cleaned != val {
				rec.RecordChange(field, val, cleaned)
				rec.SetTextField(field, cleaned)
			}
		}

		if rec.EstimatedTimesHuman == "" && len(rec.EstimatedTimes) > 0 {
			rec.EstimatedTimesHuman = humanizeTimes(rec.EstimatedTimes)
		}

		if rec.NeedsRevalidation && contentAcceptable(rec, minContentLength) {
			rec.NeedsRevalidation = false
		}
	}
	return out
}

// CleanProse strips markdown artifacts from a field value: headings, bold
// and underline wrapping, field-label prefixes, a leading bullet, and runs
// of blank lines.
func CleanProse(s string) string {
	if s == "" {
		return s
	}
	s = strings.TrimSpace(s)
	s = headingRE.ReplaceAllString(s, "")
	s = labelPrefixRE.ReplaceAllString(s, "")
	s = boldRE.ReplaceAllString(s, "$1")
	s = underlineRE.ReplaceAllString(s, "$1")
	s = leadBulletRE.ReplaceAllString(s, "")
	s = blankLinesRE.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// contentAcceptable reports whether a flagged record has real content now:
// a Description past the minimum length, no placeholder anywhere, and
// nothing left on the enrichment list.
func contentAcceptable(w *model.WorkoutRecord, minContentLength int) bool {
	if len(w.Description) <= minContentLength {
		return false
	}
	if len(w.NeedsEnrichment) > 0 {
		return false
	}
	for _, field := range model.TextFieldNames {
		if model.IsPlaceholder(w.TextField(field)) {
			return false
		}
	}
	return true
}

// tierOrder ranks the usual scaling tiers for display.
var tierOrder = map[string]int{
	"beginner":     0,
	"scaled":       1,
	"intermediate": 2,
	"rx":           3,
	"advanced":     4,
	"elite":        5,
}

// humanizeTimes renders a tier→seconds map as "Beginner: 12:00, Rx: 7:00".
func humanizeTimes(times map[string]int) string {
	tiers := make([]string, 0, len(times))
	for tier := range times {
		tiers = append(tiers, tier)
	}
	sort.Slice(tiers, func(i, j int) bool {
		ri, iKnown := tierOrder[strings.ToLower(tiers[i])]
		rj, jKnown := tierOrder[strings.ToLower(tiers[j])]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		}
		return tiers[i] < tiers[j]
	})

	parts := make([]string, len(tiers))
	for i, tier := range tiers {
		parts[i] = tier + ": " + SecondsToClock(times[tier])
	}
	return strings.Join(parts, ", ")
}
