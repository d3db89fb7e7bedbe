package pipeline

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgefit-hq/wodforge/internal/backend"
	"github.com/forgefit-hq/wodforge/internal/model"
)

// failGen always errors, standing in for a backend outage.
type failGen struct{}

func (failGen) Name() string { return "fail" }
func (failGen) Generate(context.Context, backend.Request) (string, error) {
	return "", eris.New("backend unavailable")
}

func TestEngine_Enrich_FillsMissingFields(t *testing.T) {
	t.Parallel()

	rec := completeRecord(1, "Helen")
	rec.Category = "Metcon"
	rec.Description = ""
	rec.CoachNotes = "nan"
	rec.NeedsEnrichment = []string{model.FieldDescription, model.FieldCoachNotes}

	engine := NewEngine(backend.NewStub(), DefaultTables(), 0)
	input := []model.WorkoutRecord{rec}

	out, stats := engine.Enrich(context.Background(), input)
	require.Len(t, out, 1)

	got := out[0]
	assert.False(t, model.IsEmptyOrPlaceholder(got.Description))
	assert.False(t, model.IsEmptyOrPlaceholder(got.CoachNotes))
	assert.Empty(t, got.NeedsEnrichment)
	assert.Equal(t, "stub", got.Source)
	assert.ElementsMatch(t, []string{model.FieldDescription, model.FieldCoachNotes}, got.EnrichedFields)
	assert.Equal(t, 2, stats.BackendEnriched)
	assert.Equal(t, 0, stats.BackendFailed)

	// Copy-in, copy-out: the caller's record is untouched.
	assert.Empty(t, input[0].Description)
	assert.Equal(t, "nan", input[0].CoachNotes)
}

func TestEngine_Enrich_TemplateBeatsBackendForFlavor(t *testing.T) {
	t.Parallel()

	rec := completeRecord(4, "Fran")
	rec.FlavorText = ""
	rec.NeedsEnrichment = []string{model.FieldFlavorText}

	// The failing generator proves the template path never hits the backend.
	engine := NewEngine(failGen{}, DefaultTables(), 0)

	out, stats := engine.Enrich(context.Background(), []model.WorkoutRecord{rec})
	require.Len(t, out, 1)

	assert.Equal(t, DefaultTables().Archetypes["benchmark"], out[0].FlavorText)
	assert.Equal(t, "template", out[0].Source)
	assert.Equal(t, 1, stats.TemplatesApplied)
	assert.Equal(t, 0, stats.BackendFailed)
	assert.Empty(t, out[0].NeedsEnrichment)
}

func TestEngine_Enrich_BackendFailureKeepsRecordFlagged(t *testing.T) {
	t.Parallel()

	rec := completeRecord(2, "Mystery Metcon")
	rec.Category = "Metcon" // no archetype, forces the backend
	rec.Description = ""
	rec.NeedsEnrichment = []string{model.FieldDescription}

	engine := NewEngine(failGen{}, DefaultTables(), 0)

	out, stats := engine.Enrich(context.Background(), []model.WorkoutRecord{rec})
	require.Len(t, out, 1)

	assert.Empty(t, out[0].Description)
	assert.Equal(t, []string{model.FieldDescription}, out[0].NeedsEnrichment)
	assert.Equal(t, 1, stats.BackendFailed)
	assert.Equal(t, 0, stats.BackendEnriched)
}

func TestEngine_Enrich_CancelledContextReturnsPartial(t *testing.T) {
	t.Parallel()

	records := make([]model.WorkoutRecord, 3)
	for i := range records {
		records[i] = completeRecord(i+1, "Workout")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine(backend.NewStub(), DefaultTables(), 0)
	out, _ := engine.Enrich(ctx, records)
	assert.Len(t, out, 3)
}

func TestEngine_FillField(t *testing.T) {
	t.Parallel()

	rec := completeRecord(9, "Grace")
	rec.FlavorText = ""

	engine := NewEngine(failGen{}, DefaultTables(), 0)
	ok := engine.FillField(context.Background(), &rec, model.FieldFlavorText)

	require.True(t, ok)
	assert.Equal(t, DefaultTables().Archetypes["benchmark"], rec.FlavorText)

	// Backend-only fields report failure without mutating the record.
	rec.Description = ""
	ok = engine.FillField(context.Background(), &rec, model.FieldDescription)
	assert.False(t, ok)
	assert.Empty(t, rec.Description)
}
