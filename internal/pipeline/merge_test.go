package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgefit-hq/wodforge/internal/model"
)

func TestMerge_FillsOnlyEmptyOrPlaceholderFields(t *testing.T) {
	t.Parallel()

	base := completeRecord(1, "Diane")
	base.Description = "No description available"
	base.CoachNotes = ""

	enriched := completeRecord(1, "Diane")
	enriched.Description = "A deadlift and handstand push-up couplet with a sharp midline bite."
	enriched.CoachNotes = "Break the deadlifts before your lower back rounds."
	enriched.EnrichedFields = []string{model.FieldDescription, model.FieldCoachNotes}
	enriched.Source = "stub"

	out := Merge([]model.WorkoutRecord{base}, []model.WorkoutRecord{enriched})
	require.Len(t, out, 1)

	got := out[0]
	assert.Equal(t, enriched.Description, got.Description)
	assert.Equal(t, enriched.CoachNotes, got.CoachNotes)
	assert.Equal(t, "stub", got.Source)
	assert.Empty(t, got.NeedsEnrichment)

	// Both overlays leave an audit trail.
	require.Contains(t, got.Changes, model.FieldDescription)
	assert.Equal(t, "No description available", got.Changes[model.FieldDescription].From)
	assert.Equal(t, enriched.Description, got.Changes[model.FieldDescription].To)
}

func TestMerge_NeverRegressesGoodContent(t *testing.T) {
	t.Parallel()

	base := completeRecord(1, "Cindy")
	enriched := completeRecord(1, "Cindy")
	enriched.Description = "A different description that must not replace the original."
	enriched.CoachNotes = "" // empty enrichment cannot blank a base field

	out := Merge([]model.WorkoutRecord{base}, []model.WorkoutRecord{enriched})
	require.Len(t, out, 1)

	assert.Equal(t, base.Description, out[0].Description)
	assert.Equal(t, base.CoachNotes, out[0].CoachNotes)
	assert.Empty(t, out[0].Changes)
}

func TestMerge_PlaceholderEnrichmentIsIgnored(t *testing.T) {
	t.Parallel()

	base := completeRecord(1, "Annie")
	base.Description = ""

	enriched := completeRecord(1, "Annie")
	enriched.Description = "TBD"

	out := Merge([]model.WorkoutRecord{base}, []model.WorkoutRecord{enriched})
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Description)
	assert.Equal(t, []string{model.FieldDescription}, out[0].NeedsEnrichment)
}

func TestMerge_UnmatchedRecordsPassThrough(t *testing.T) {
	t.Parallel()

	base := completeRecord(1, "Karen")
	out := Merge([]model.WorkoutRecord{base}, nil)
	require.Len(t, out, 1)
	assert.Equal(t, base, out[0])
}

func TestMerge_InputUntouched(t *testing.T) {
	t.Parallel()

	base := completeRecord(1, "Eva")
	base.Description = ""
	baseSlice := []model.WorkoutRecord{base}

	enriched := completeRecord(1, "Eva")
	enriched.Description = "A long grinder of running, swings, and pull-ups over five rounds."

	_ = Merge(baseSlice, []model.WorkoutRecord{enriched})

	assert.Empty(t, baseSlice[0].Description)
	assert.Empty(t, baseSlice[0].Changes)
}
