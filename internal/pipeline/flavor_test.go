package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgefit-hq/wodforge/internal/model"
)

func TestEnhanceFlavor_ReplacesGenericLines(t *testing.T) {
	t.Parallel()

	rec := completeRecord(7, "Fran")
	rec.FlavorText = "An effective CrossFit workout."

	tables := DefaultTables()
	out := EnhanceFlavor([]model.WorkoutRecord{rec}, tables)
	require.Len(t, out, 1)

	got := out[0].FlavorText
	assert.NotEqual(t, rec.FlavorText, got)
	assert.Contains(t, got, "Fran")
	assert.NotContains(t, got, "{name}")

	// A for-time benchmark routes to the mixed_for_time pool.
	found := false
	for _, tmpl := range tables.FlavorBank["mixed_for_time"] {
		if got == strings.ReplaceAll(tmpl, "{name}", "Fran") {
			found = true
			break
		}
	}
	assert.True(t, found, "flavor line %q not from the mixed_for_time pool", got)
	assert.Contains(t, out[0].Changes, model.FieldFlavorText)
}

func TestEnhanceFlavor_Idempotent(t *testing.T) {
	t.Parallel()

	records := []model.WorkoutRecord{
		completeRecord(1, "Fran"),
		completeRecord(2, "Cindy"),
		completeRecord(3, "Murph"),
	}
	for i := range records {
		records[i].FlavorText = "challenge that demands focus and grit."
	}

	tables := DefaultTables()
	once := EnhanceFlavor(records, tables)
	twice := EnhanceFlavor(once, tables)

	for i := range once {
		assert.Equal(t, once[i].FlavorText, twice[i].FlavorText)
	}
}

func TestEnhanceFlavor_KeepsHandWrittenCopy(t *testing.T) {
	t.Parallel()

	rec := completeRecord(5, "Annie")

	out := EnhanceFlavor([]model.WorkoutRecord{rec}, DefaultTables())
	require.Len(t, out, 1)
	assert.Equal(t, rec.FlavorText, out[0].FlavorText)
	assert.Empty(t, out[0].Changes)
}

func TestEnhanceFlavor_EmptyFlavorIsGeneric(t *testing.T) {
	t.Parallel()

	rec := completeRecord(6, "Barbara")
	rec.FlavorText = ""

	out := EnhanceFlavor([]model.WorkoutRecord{rec}, DefaultTables())
	require.Len(t, out, 1)
	assert.NotEmpty(t, out[0].FlavorText)
}

func TestChooseFlavorBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rec    model.WorkoutRecord
		bucket string
	}{
		{
			name:   "partner beats amrap",
			rec:    model.WorkoutRecord{Category: "Partner", FormatDuration: "AMRAP 20"},
			bucket: "partner_team",
		},
		{
			name:   "emom is interval",
			rec:    model.WorkoutRecord{FormatDuration: "EMOM 12"},
			bucket: "interval_power",
		},
		{
			name:   "monostructural amrap is engine work",
			rec:    model.WorkoutRecord{Category: "Cardio", FormatDuration: "AMRAP 30"},
			bucket: "long_engine",
		},
		{
			name:   "mixed amrap",
			rec:    model.WorkoutRecord{Category: "Metcon", FormatDuration: "AMRAP 15"},
			bucket: "amrap_mixed",
		},
		{
			name:   "mixed for time",
			rec:    model.WorkoutRecord{Category: "Metcon", FormatDuration: "For Time"},
			bucket: "mixed_for_time",
		},
		{
			name:   "bodyweight",
			rec:    model.WorkoutRecord{Category: "Bodyweight"},
			bucket: "bodyweight_travel",
		},
		{
			name:   "strength",
			rec:    model.WorkoutRecord{Category: "Strength", MovementTypes: "Weightlifting"},
			bucket: "strength_barbell",
		},
		{
			name:   "gymnastics skill",
			rec:    model.WorkoutRecord{MovementTypes: "Gymnastics"},
			bucket: "skill_gymnastics",
		},
		{
			name:   "hero fallback",
			rec:    model.WorkoutRecord{Category: "Hero"},
			bucket: "benchmark_hero",
		},
		{
			name:   "default",
			rec:    model.WorkoutRecord{Category: "Misc"},
			bucket: "general_default",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.bucket, chooseFlavorBucket(&tt.rec))
		})
	}
}

func TestStableHash_Deterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, stableHash("42"), stableHash("42"))
	assert.Equal(t, int('7'), stableHash("7"))
}
