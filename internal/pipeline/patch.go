package pipeline

import (
	"fmt"
	"maps"

	"go.uber.org/zap"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// GateRejection names a record the final gate dropped and every invariant it
// violated. Nothing leaves the pipeline silently.
type GateRejection struct {
	ID      model.RecordID `json:"id"`
	Name    string         `json:"name"`
	Reasons []string       `json:"reasons"`
}

// ApplyOverrides applies the manual override table, keyed by exact workout
// name. Overrides always win: they are curated content for specific
// benchmark and hero workouts. Returns the patched copies and how many
// records changed.
func ApplyOverrides(records []model.WorkoutRecord, overrides map[string]map[string]string) ([]model.WorkoutRecord, int) {
	out := make([]model.WorkoutRecord, len(records))
	copy(out, records)

	patched := 0
	for i := range out {
		rec := &out[i]
		fields, ok := overrides[rec.Name]
		if !ok {
			continue
		}

		rec.Changes = maps.Clone(rec.Changes)
		changed := false
		for field, value := range fields {
			old := rec.TextField(field)
			if old == value {
				continue
			}
			rec.RecordChange(field, old, value)
			rec.SetTextField(field, value)
			changed = true
		}
		if changed {
			rec.NeedsEnrichment = model.MissingFields(rec)
			if rec.NeedsEnrichment == nil {
				rec.NeedsEnrichment = []string{}
			}
			patched++
			zap.L().Info("patch: override applied", zap.String("workout", rec.Name))
		}
	}
	return out, patched
}

// Gate is the final quality gate. Records that violate any invariant are
// dropped with every violated reason logged; survivors get their transient
// audit fields stripped and are ready to publish.
func Gate(records []model.WorkoutRecord) ([]model.WorkoutRecord, []GateRejection) {
	kept := make([]model.WorkoutRecord, 0, len(records))
	var rejected []GateRejection

	for i := range records {
		rec := records[i]
		reasons := gateViolations(&rec)
		if len(reasons) > 0 {
			rejected = append(rejected, GateRejection{ID: rec.ID, Name: rec.Name, Reasons: reasons})
			zap.L().Warn("gate: record dropped",
				zap.String("id", rec.ID.String()),
				zap.String("workout", rec.Name),
				zap.Strings("reasons", reasons),
			)
			continue
		}

		rec.Changes = nil
		rec.EnrichedFields = nil
		rec.Source = ""
		if rec.NeedsEnrichment == nil {
			rec.NeedsEnrichment = []string{}
		}
		kept = append(kept, rec)
	}
	return kept, rejected
}

func gateViolations(w *model.WorkoutRecord) []string {
	var reasons []string

	for _, field := range model.TextFieldNames {
		if model.IsPlaceholder(w.TextField(field)) {
			reasons = append(reasons, fmt.Sprintf("placeholder in %s", field))
		}
	}

	for _, field := range model.RequiredFields {
		if model.IsEmpty(w.TextField(field)) {
			reasons = append(reasons, fmt.Sprintf("missing %s", field))
		}
	}
	if model.IsEmpty(w.Instructions) && model.IsEmpty(w.InstructionsClean) {
		reasons = append(reasons, "missing Instructions")
	}
	if w.LastCleaned == "" {
		reasons = append(reasons, "missing lastCleaned")
	}

	if len(w.NeedsEnrichment) > 0 {
		reasons = append(reasons, fmt.Sprintf("needsEnrichment not empty: %v", w.NeedsEnrichment))
	}
	if w.NeedsRevalidation {
		reasons = append(reasons, "needsRevalidation set")
	}
	return reasons
}
