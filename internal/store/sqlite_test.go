package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgefit-hq/wodforge/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "wodforge.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	t.Parallel()
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "workouts.csv")
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusQueued, run.Status)

	require.NoError(t, s.UpdateRunStatus(ctx, run.ID, model.RunStatusEnriching))

	summary := &model.RunSummary{RowsRead: 602, Published: 593, GateDropped: 9}
	require.NoError(t, s.UpdateRunSummary(ctx, run.ID, summary))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Summary)
	assert.Equal(t, 602, got.Summary.RowsRead)
	assert.Equal(t, 593, got.Summary.Published)
}

func TestSQLiteStore_UpdateMissingRun(t *testing.T) {
	t.Parallel()
	s := newTestSQLiteStore(t)

	err := s.UpdateRunStatus(context.Background(), "no-such-run", model.RunStatusFailed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteStore_Stages(t *testing.T) {
	t.Parallel()
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "workouts.csv")
	require.NoError(t, err)

	stage, err := s.CreateStage(ctx, run.ID, "ingest")
	require.NoError(t, err)
	assert.Equal(t, model.StageStatusRunning, stage.Status)

	err = s.CompleteStage(ctx, stage.ID, &model.StageResult{
		Name:     "ingest",
		Status:   model.StageStatusComplete,
		Duration: 42,
		Records:  602,
	})
	require.NoError(t, err)
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	t.Parallel()
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	for range 3 {
		_, err := s.CreateRun(ctx, "workouts.csv")
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	runs, err = s.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSQLiteStore_WorkoutIDRegistry(t *testing.T) {
	t.Parallel()
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	ids, err := s.WorkoutIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, s.SaveWorkoutIDs(ctx, map[string]int{"fran": 1, "murph": 2}))

	// Upsert: same name keeps one row, new value wins.
	require.NoError(t, s.SaveWorkoutIDs(ctx, map[string]int{"fran": 1, "cindy": 3}))

	ids, err = s.WorkoutIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"fran": 1, "murph": 2, "cindy": 3}, ids)
}
