package pipeline

import (
	"maps"
	"strings"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// Phrases that mark a flavor line as boilerplate worth replacing. Anything
// not on this list is someone's hand-written copy and stays.
var genericFlavorPhrases = []string{
	"brutal but fair; pace wisely and prioritize technique.",
	"expect sharp efforts and quick transitions; small mistakes add up.",
	"an effective crossfit workout.",
	"challenge that demands focus and grit.",
}

// EnhanceFlavor replaces generic flavor text with a line from the category
// bucket's template pool. Selection is a stable hash of the record ID modulo
// the pool size, so re-running the stage changes nothing: a record that
// already carries its pool line is no longer generic and is skipped.
func EnhanceFlavor(records []model.WorkoutRecord, tables *Tables) []model.WorkoutRecord {
	out := make([]model.WorkoutRecord, len(records))
	copy(out, records)

	for i := range out {
		rec := &out[i]
		if !isGenericFlavor(rec.FlavorText) {
			continue
		}

		pool := tables.FlavorBank[chooseFlavorBucket(rec)]
		if len(pool) == 0 {
			pool = tables.FlavorBank["general_default"]
		}
		if len(pool) == 0 {
			continue
		}

		line := renderFlavor(pool, rec)
		if line == rec.FlavorText {
			continue
		}
		rec.Changes = maps.Clone(rec.Changes)
		rec.RecordChange(model.FieldFlavorText, rec.FlavorText, line)
		rec.FlavorText = line
	}
	return out
}

func isGenericFlavor(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	low := strings.ToLower(trimmed)
	for _, phrase := range genericFlavorPhrases {
		if strings.Contains(low, phrase) {
			return true
		}
	}
	return false
}

// chooseFlavorBucket routes a record to its template pool. Ordering matters:
// partner pieces stay partner pieces even when they are also AMRAPs.
func chooseFlavorBucket(w *model.WorkoutRecord) string {
	stim := strings.ToLower(w.Stimulus)
	format := strings.ToLower(w.FormatDuration)
	cat := strings.ToLower(w.Category)
	mov := strings.ToLower(w.MovementTypes)
	mono := strings.Contains(cat, "monostructural") || strings.Contains(cat, "cardio") || strings.Contains(stim, "monostructural")

	switch {
	case strings.Contains(cat, "partner") || strings.Contains(cat, "team"):
		return "partner_team"
	case strings.Contains(stim, "interval") || strings.Contains(format, "emom") || strings.Contains(format, "every minute"):
		return "interval_power"
	case strings.Contains(format, "amrap") || strings.Contains(stim, "amrap"):
		if mono {
			return "long_engine"
		}
		return "amrap_mixed"
	case strings.Contains(format, "for time") || strings.Contains(stim, "for time"):
		if mono {
			return "long_engine"
		}
		return "mixed_for_time"
	case strings.Contains(cat, "bodyweight") || strings.Contains(cat, "travel"):
		return "bodyweight_travel"
	case strings.Contains(mov, "weightlifting") || strings.Contains(cat, "strength"):
		return "strength_barbell"
	case strings.Contains(mov, "gymnastics") || strings.Contains(stim, "skill"):
		return "skill_gymnastics"
	case strings.Contains(cat, "benchmark") || strings.Contains(cat, "hero"):
		return "benchmark_hero"
	}
	return "general_default"
}

// renderFlavor picks a template by stable hash of the record's ID and
// substitutes the workout name.
func renderFlavor(pool []string, w *model.WorkoutRecord) string {
	key := w.ID.String()
	if w.ID == 0 {
		key = w.Name
	}
	idx := stableHash(key) % len(pool)

	name := w.Name
	if name == "" {
		name = "This workout"
	}
	return strings.ReplaceAll(pool[idx], "{name}", name)
}

// stableHash sums the bytes of a key. Cheap, stable across runs and
// platforms, and that is all the template picker needs.
func stableHash(key string) int {
	sum := 0
	for _, b := range []byte(key) {
		sum += int(b)
	}
	return sum
}
