package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgefit-hq/wodforge/internal/model"
)

func TestWriteNeedsReports(t *testing.T) {
	t.Parallel()

	needy := completeRecord(1, "Stub")
	needy.Description = "No description available"

	sourced := completeRecord(2, "Scraped")
	sourced.Description = "Posted on crossfit.com in 2019, a long chipper of running and lifting."

	clean := completeRecord(3, "Clean")

	dir := t.TempDir()
	require.NoError(t, WriteNeedsReports([]model.WorkoutRecord{needy, sourced, clean}, dir))

	var enrichment []NeedsEntry
	data, err := os.ReadFile(filepath.Join(dir, EnrichmentReportFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &enrichment))
	require.Len(t, enrichment, 1)
	assert.Equal(t, "Stub", enrichment[0].Name)
	assert.Equal(t, []string{model.FieldDescription}, enrichment[0].NeedsEnrichment)

	var revalidation []NeedsEntry
	data, err = os.ReadFile(filepath.Join(dir, RevalidationReportFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &revalidation))
	require.Len(t, revalidation, 1)
	assert.Equal(t, "Scraped", revalidation[0].Name)
}

func TestWriteNeedsReports_EmptyReportsAreArrays(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, WriteNeedsReports([]model.WorkoutRecord{completeRecord(1, "Clean")}, dir))

	for _, file := range []string{EnrichmentReportFile, RevalidationReportFile} {
		data, err := os.ReadFile(filepath.Join(dir, file))
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	}
}
