package store

import (
	"context"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for the pipeline: run bookkeeping,
// per-stage results, and the workout ID registry that keeps ingest IDs
// stable across runs.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, source string) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	UpdateRunSummary(ctx context.Context, runID string, summary *model.RunSummary) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Stages
	CreateStage(ctx context.Context, runID string, name string) (*model.RunStage, error)
	CompleteStage(ctx context.Context, stageID string, result *model.StageResult) error

	// Workout ID registry: lowercased name → assigned ID.
	WorkoutIDs(ctx context.Context) (map[string]int, error)
	SaveWorkoutIDs(ctx context.Context, ids map[string]int) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
