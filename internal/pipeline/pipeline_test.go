package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgefit-hq/wodforge/internal/backend"
	"github.com/forgefit-hq/wodforge/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Enrichment: config.EnrichmentConfig{
			Backend:          "stub",
			BatchSize:        20,
			MinContentLength: 40,
		},
	}
}

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workouts.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const testCSV = `Name,Instructions,Category,Format & Duration,Score Type,Description
Fran,"21-15-9 Thrusters 95/65 lbs, Pull-ups",Benchmark,For Time,Time,
Helen,"3 rounds: run 400m, 21 KB swings 53/35 lbs, 12 pull-ups",Benchmark,For Time,Time,A triplet of running and light gymnastics that rewards steady pacing.
,orphan row without a name,Metcon,AMRAP 10,Rounds,
`

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	path := writeTestCSV(t, testCSV)
	p := New(testConfig(), nil, backend.NewStub(), DefaultTables())

	result, err := p.Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Summary.RowsRead)
	assert.Equal(t, 2, result.Summary.Ingested)
	assert.Equal(t, 1, result.Summary.RowsDropped)
	assert.Equal(t, 2, result.Summary.NeedsEnrichment, "both rows miss at least one enrichable field")
	assert.Equal(t, 2, result.Summary.Published)
	assert.Empty(t, result.Rejected)
	require.Len(t, result.Summary.Stages, 8)
	for _, stage := range result.Summary.Stages {
		assert.Equal(t, "complete", string(stage.Status), "stage %s", stage.Name)
	}

	for _, rec := range result.Records {
		assert.NotZero(t, rec.ID)
		assert.NotEmpty(t, rec.Description)
		assert.NotEmpty(t, rec.CoachNotes)
		assert.NotEmpty(t, rec.FlavorText)
		assert.NotEmpty(t, rec.MovementTypes)
		assert.NotEmpty(t, rec.DifficultyTier)
		assert.NotEmpty(t, rec.LastCleaned)
		assert.NotNil(t, rec.NeedsEnrichment)
		assert.Empty(t, rec.NeedsEnrichment)
		assert.False(t, rec.NeedsRevalidation)
		// Transient audit fields never reach the artifact.
		assert.Nil(t, rec.Changes)
		assert.Nil(t, rec.EnrichedFields)
		assert.Empty(t, rec.Source)
		// Loads were converted at ingest.
		assert.NotContains(t, rec.Instructions, "lb")
	}
}

func TestPipeline_Run_SchemaFailure(t *testing.T) {
	t.Parallel()

	path := writeTestCSV(t, "Name,Instructions\nFran,work\n")
	p := New(testConfig(), nil, backend.NewStub(), DefaultTables())

	result, err := p.Run(context.Background(), path)
	require.Error(t, err)

	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
	assert.NotEmpty(t, result.Summary.Error)
}

func TestPipeline_Run_MissingInput(t *testing.T) {
	t.Parallel()

	p := New(testConfig(), nil, backend.NewStub(), DefaultTables())
	_, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
