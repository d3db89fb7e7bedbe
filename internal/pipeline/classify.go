package pipeline

import (
	"strings"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// Classification is the output of the needs classifier. All is a copy of the
// input with needsEnrichment/needsRevalidation populated; the other slices
// are the flagged subsets of All. The input slice is never mutated.
type Classification struct {
	All               []model.WorkoutRecord
	NeedsEnrichment   []model.WorkoutRecord
	NeedsRevalidation []model.WorkoutRecord
}

// Classify inspects every record and flags the ones with missing or
// placeholder content (needs enrichment) and the ones whose text still
// references crossfit.com source pages (needs revalidation).
func Classify(records []model.WorkoutRecord) Classification {
	c := Classification{All: make([]model.WorkoutRecord, len(records))}
	copy(c.All, records)

	for i := range c.All {
		rec := &c.All[i]
		rec.NeedsEnrichment = model.MissingFields(rec)
		rec.NeedsRevalidation = referencesSource(rec)

		if len(rec.NeedsEnrichment) > 0 {
			c.NeedsEnrichment = append(c.NeedsEnrichment, *rec)
		}
		if rec.NeedsRevalidation {
			c.NeedsRevalidation = append(c.NeedsRevalidation, *rec)
		}
	}
	return c
}

// referencesSource reports whether any text field still points at the
// crossfit.com page the row was scraped from. Such descriptions tend to be
// stubs ("see crossfit.com/...") rather than real content.
func referencesSource(w *model.WorkoutRecord) bool {
	for _, f := range model.TextFieldNames {
		if strings.Contains(strings.ToLower(w.TextField(f)), "crossfit.com") {
			return true
		}
	}
	return false
}
