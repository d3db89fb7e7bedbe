// Package pipeline implements the eight-stage workout enrichment pipeline:
// ingest, classify, enrich, merge, sanitize, format, flavor, gate. Stages
// are pure functions over record slices; file and database I/O happen only
// at the ends, in Run.
package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/forgefit-hq/wodforge/internal/backend"
	"github.com/forgefit-hq/wodforge/internal/config"
	"github.com/forgefit-hq/wodforge/internal/fetcher"
	"github.com/forgefit-hq/wodforge/internal/model"
	"github.com/forgefit-hq/wodforge/internal/store"
)

// Pipeline wires the stages together with their dependencies.
type Pipeline struct {
	cfg    *config.Config
	store  store.Store // nil disables run bookkeeping and the ID registry
	engine *Engine
	tables *Tables
}

// RunResult is what a full pipeline run produces.
type RunResult struct {
	RunID    string
	Records  []model.WorkoutRecord
	Rejected []GateRejection
	Summary  model.RunSummary
}

func New(cfg *config.Config, st store.Store, gen backend.Generator, tables *Tables) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		store:  st,
		engine: NewEngine(gen, tables, cfg.Enrichment.BatchSize),
		tables: tables,
	}
}

// Run executes the full pipeline on one input file.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (*RunResult, error) {
	result := &RunResult{}
	now := time.Now()

	var runID string
	if p.store != nil {
		run, err := p.store.CreateRun(ctx, inputPath)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: create run")
		}
		runID = run.ID
		result.RunID = runID
	}

	records, err := p.runStages(ctx, runID, inputPath, now, result)
	if err != nil {
		p.setStatus(ctx, runID, model.RunStatusFailed)
		result.Summary.Error = err.Error()
		return result, err
	}

	result.Records = records
	result.Summary.Published = len(records)

	if p.store != nil {
		if err := p.store.UpdateRunSummary(ctx, runID, &result.Summary); err != nil {
			zap.L().Error("pipeline: persist run summary", zap.Error(err))
		}
	}

	zap.L().Info("pipeline: run complete",
		zap.Int("rows_read", result.Summary.RowsRead),
		zap.Int("ingested", result.Summary.Ingested),
		zap.Int("rows_dropped", result.Summary.RowsDropped),
		zap.Int("needs_enrichment", result.Summary.NeedsEnrichment),
		zap.Int("needs_revalidation", result.Summary.NeedsRevalidation),
		zap.Int("templates_applied", result.Summary.TemplatesApplied),
		zap.Int("backend_enriched", result.Summary.BackendEnriched),
		zap.Int("gate_dropped", result.Summary.GateDropped),
		zap.Int("published", result.Summary.Published),
	)
	return result, nil
}

func (p *Pipeline) runStages(ctx context.Context, runID, inputPath string, now time.Time, result *RunResult) ([]model.WorkoutRecord, error) {
	summary := &result.Summary

	// Stage 1: ingest.
	p.setStatus(ctx, runID, model.RunStatusIngesting)

	var records []model.WorkoutRecord
	err := p.trackStage(ctx, runID, "ingest", summary, func() (int, error) {
		header, rows, err := readInput(inputPath)
		if err != nil {
			return 0, err
		}

		ids, err := p.loadWorkoutIDs(ctx)
		if err != nil {
			return 0, err
		}

		var stats IngestStats
		records, stats, err = Ingest(header, rows, ids, now)
		if err != nil {
			return 0, err
		}
		summary.RowsRead = stats.RowsRead
		summary.Ingested = stats.Ingested
		summary.RowsDropped = stats.Dropped

		return len(records), p.saveWorkoutIDs(ctx, ids)
	})
	if err != nil {
		return nil, err
	}

	// Stage 2: classify.
	var cls Classification
	err = p.trackStage(ctx, runID, "classify", summary, func() (int, error) {
		cls = Classify(records)
		summary.NeedsEnrichment = len(cls.NeedsEnrichment)
		summary.NeedsRevalidation = len(cls.NeedsRevalidation)
		return len(cls.All), nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 3: enrich the flagged subset.
	p.setStatus(ctx, runID, model.RunStatusEnriching)

	var enriched []model.WorkoutRecord
	err = p.trackStage(ctx, runID, "enrich", summary, func() (int, error) {
		var stats EnrichStats
		enriched, stats = p.engine.Enrich(ctx, cls.NeedsEnrichment)
		summary.TemplatesApplied = stats.TemplatesApplied
		summary.BackendEnriched = stats.BackendEnriched
		summary.BackendFailed = stats.BackendFailed
		return len(enriched), nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 4: merge enriched values back onto the full set.
	err = p.trackStage(ctx, runID, "merge", summary, func() (int, error) {
		records = Merge(cls.All, enriched)
		return len(records), nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 5: sanitize.
	err = p.trackStage(ctx, runID, "sanitize", summary, func() (int, error) {
		records = NewSanitizer(p.engine).Sanitize(ctx, records, now)
		return len(records), nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 6: quality formatting.
	err = p.trackStage(ctx, runID, "format", summary, func() (int, error) {
		records = FormatQuality(records, p.cfg.Enrichment.MinContentLength)
		return len(records), nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 7: flavor text.
	err = p.trackStage(ctx, runID, "flavor", summary, func() (int, error) {
		records = EnhanceFlavor(records, p.tables)
		return len(records), nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 8: overrides, then the final gate.
	p.setStatus(ctx, runID, model.RunStatusGating)

	err = p.trackStage(ctx, runID, "gate", summary, func() (int, error) {
		patched, _ := ApplyOverrides(records, p.tables.Overrides)
		kept, rejected := Gate(patched)
		records = kept
		result.Rejected = rejected
		summary.GateDropped = len(rejected)
		return len(kept), nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// trackStage runs one stage and records its outcome: a stage row in the
// store when one is configured, a summary entry always.
func (p *Pipeline) trackStage(ctx context.Context, runID, name string, summary *model.RunSummary, fn func() (int, error)) error {
	if err := ctx.Err(); err != nil {
		return eris.Wrapf(err, "pipeline: %s cancelled", name)
	}

	var stageID string
	if p.store != nil && runID != "" {
		st, err := p.store.CreateStage(ctx, runID, name)
		if err != nil {
			zap.L().Error("pipeline: create stage", zap.String("stage", name), zap.Error(err))
		} else {
			stageID = st.ID
		}
	}

	start := time.Now()
	records, err := fn()

	stageResult := model.StageResult{
		Name:     name,
		Status:   model.StageStatusComplete,
		Duration: time.Since(start).Milliseconds(),
		Records:  records,
	}
	if err != nil {
		stageResult.Status = model.StageStatusFailed
		stageResult.Error = err.Error()
	}

	summary.Stages = append(summary.Stages, stageResult)

	if stageID != "" {
		if cErr := p.store.CompleteStage(ctx, stageID, &stageResult); cErr != nil {
			zap.L().Error("pipeline: complete stage", zap.String("stage", name), zap.Error(cErr))
		}
	}

	zap.L().Info("pipeline: stage",
		zap.String("stage", name),
		zap.String("status", string(stageResult.Status)),
		zap.Int64("duration_ms", stageResult.Duration),
		zap.Int("records", records),
	)
	if err != nil {
		return eris.Wrapf(err, "pipeline: stage %s", name)
	}
	return nil
}

func (p *Pipeline) setStatus(ctx context.Context, runID string, status model.RunStatus) {
	if p.store == nil || runID == "" {
		return
	}
	if err := p.store.UpdateRunStatus(ctx, runID, status); err != nil {
		zap.L().Error("pipeline: update run status", zap.String("status", string(status)), zap.Error(err))
	}
}

func (p *Pipeline) loadWorkoutIDs(ctx context.Context) (map[string]int, error) {
	if p.store == nil {
		return nil, nil
	}
	ids, err := p.store.WorkoutIDs(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: load workout ids")
	}
	return ids, nil
}

func (p *Pipeline) saveWorkoutIDs(ctx context.Context, ids map[string]int) error {
	if p.store == nil || len(ids) == 0 {
		return nil
	}
	return eris.Wrap(p.store.SaveWorkoutIDs(ctx, ids), "pipeline: save workout ids")
}

// readInput dispatches on the input extension: xlsx exports and plain CSV
// both feed the same ingest stage.
func readInput(path string) ([]string, [][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fetcher.ReadXLSX(path, fetcher.XLSXOptions{})
	}
	return fetcher.ReadCSV(path)
}
