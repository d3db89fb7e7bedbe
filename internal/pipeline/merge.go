package pipeline

import (
	"maps"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// Merge overlays enriched records onto the base set by ID. The rule is
// strictly additive: an enriched value lands only where the base value is
// empty or placeholder and the enriched value is neither. A merge can never
// make a record worse than its base.
func Merge(base, enriched []model.WorkoutRecord) []model.WorkoutRecord {
	byID := make(map[model.RecordID]*model.WorkoutRecord, len(enriched))
	for i := range enriched {
		byID[enriched[i].ID] = &enriched[i]
	}

	out := make([]model.WorkoutRecord, len(base))
	copy(out, base)

	for i := range out {
		rec := &out[i]
		enr, ok := byID[rec.ID]
		if !ok {
			continue
		}

		// The copy shares the base record's changes map; clone before
		// writing so the input slice stays untouched.
		rec.Changes = maps.Clone(rec.Changes)

		for _, field := range model.TextFieldNames {
			baseVal := rec.TextField(field)
			enrVal := enr.TextField(field)
			if !model.IsEmptyOrPlaceholder(baseVal) {
				continue
			}
			if model.IsEmptyOrPlaceholder(enrVal) {
				continue
			}
			rec.RecordChange(field, baseVal, enrVal)
			rec.SetTextField(field, enrVal)
		}

		// Carry the audit trail from the enrichment pass.
		if len(enr.EnrichedFields) > 0 {
			rec.EnrichedFields = append(rec.EnrichedFields, enr.EnrichedFields...)
		}
		if enr.Source != "" {
			rec.Source = enr.Source
		}

		rec.NeedsEnrichment = model.MissingFields(rec)
		if rec.NeedsEnrichment == nil {
			rec.NeedsEnrichment = []string{}
		}
	}
	return out
}
