package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgefit-hq/wodforge/internal/model"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	placeholder := completeRecord(1, "Stub")
	placeholder.Description = "No description available"
	placeholder.CoachNotes = ""

	sourced := completeRecord(2, "Scraped")
	sourced.CoachNotes = "See crossfit.com/workout/2019 for the original posting."

	clean := completeRecord(3, "Clean")

	input := []model.WorkoutRecord{placeholder, sourced, clean}
	cls := Classify(input)

	require.Len(t, cls.All, 3)
	require.Len(t, cls.NeedsEnrichment, 1)
	require.Len(t, cls.NeedsRevalidation, 1)

	assert.Equal(t, "Stub", cls.NeedsEnrichment[0].Name)
	assert.ElementsMatch(t, []string{model.FieldDescription, model.FieldCoachNotes}, cls.NeedsEnrichment[0].NeedsEnrichment)

	assert.Equal(t, "Scraped", cls.NeedsRevalidation[0].Name)
	assert.True(t, cls.NeedsRevalidation[0].NeedsRevalidation)

	// Clean records carry empty flags, not nil.
	assert.Empty(t, cls.All[2].NeedsEnrichment)
	assert.False(t, cls.All[2].NeedsRevalidation)

	// The input slice is untouched.
	assert.Empty(t, input[0].NeedsEnrichment)
	assert.False(t, input[1].NeedsRevalidation)
}

func TestClassify_Empty(t *testing.T) {
	t.Parallel()

	cls := Classify(nil)
	assert.Empty(t, cls.All)
	assert.Empty(t, cls.NeedsEnrichment)
	assert.Empty(t, cls.NeedsRevalidation)
}
