package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/forgefit-hq/wodforge/internal/backend"
	"github.com/forgefit-hq/wodforge/internal/model"
)

// enrichWorkers bounds in-flight records per batch. The backend's rate
// limiter still governs request pacing; this only caps goroutines.
const enrichWorkers = 4

// Engine fills missing record fields: archetype templates first (free), the
// generator backend for whatever remains. Backend failures are per-record;
// the batch keeps going and the record keeps its needsEnrichment entries.
type Engine struct {
	gen       backend.Generator
	tables    *Tables
	batchSize int
}

// EnrichStats counts what the engine did in one pass.
type EnrichStats struct {
	TemplatesApplied int
	BackendEnriched  int
	BackendFailed    int
}

func NewEngine(gen backend.Generator, tables *Tables, batchSize int) *Engine {
	if batchSize <= 0 {
		batchSize = 20
	}
	return &Engine{gen: gen, tables: tables, batchSize: batchSize}
}

// Enrich processes records in batches and returns enriched copies. The input
// slice is untouched.
func (e *Engine) Enrich(ctx context.Context, records []model.WorkoutRecord) ([]model.WorkoutRecord, EnrichStats) {
	out := make([]model.WorkoutRecord, len(records))
	copy(out, records)

	var stats EnrichStats
	for start := 0; start < len(out); start += e.batchSize {
		if ctx.Err() != nil {
			zap.L().Warn("enrich: context cancelled, returning partial results",
				zap.Int("processed", start), zap.Int("total", len(out)))
			break
		}

		end := min(start+e.batchSize, len(out))
		zap.L().Info("enrich: batch",
			zap.Int("from", start+1), zap.Int("to", end), zap.Int("total", len(out)))

		// Records are independent, so a batch fans out across a bounded
		// worker group. Each goroutine owns one slice element and its own
		// stats delta.
		deltas := make([]EnrichStats, end-start)
		var g errgroup.Group
		g.SetLimit(enrichWorkers)
		for i := start; i < end; i++ {
			g.Go(func() error {
				e.enrichRecord(ctx, &out[i], &deltas[i-start])
				return nil
			})
		}
		_ = g.Wait()

		for _, d := range deltas {
			stats.TemplatesApplied += d.TemplatesApplied
			stats.BackendEnriched += d.BackendEnriched
			stats.BackendFailed += d.BackendFailed
		}
	}
	return out, stats
}

func (e *Engine) enrichRecord(ctx context.Context, rec *model.WorkoutRecord, stats *EnrichStats) {
	missing := rec.NeedsEnrichment
	if missing == nil {
		missing = model.MissingFields(rec)
	}

	for _, field := range missing {
		if field == model.FieldFlavorText {
			if tmpl := e.tables.ArchetypeFor(rec); tmpl != "" {
				rec.RecordChange(field, rec.FlavorText, tmpl)
				rec.FlavorText = tmpl
				rec.EnrichedFields = append(rec.EnrichedFields, field)
				rec.Source = "template"
				stats.TemplatesApplied++
				continue
			}
		}

		value, err := e.gen.Generate(ctx, backend.Request{Record: *rec, Field: field})
		if err != nil {
			stats.BackendFailed++
			zap.L().Warn("enrich: backend failed, skipping remaining fields",
				zap.String("workout", rec.Name),
				zap.String("field", field),
				zap.Error(err),
			)
			break // fail fast for this record, keep the batch moving
		}

		rec.RecordChange(field, rec.TextField(field), value)
		rec.SetTextField(field, value)
		rec.EnrichedFields = append(rec.EnrichedFields, field)
		rec.Source = e.gen.Name()
		stats.BackendEnriched++
	}

	rec.NeedsEnrichment = model.MissingFields(rec)
	if rec.NeedsEnrichment == nil {
		rec.NeedsEnrichment = []string{}
	}
}

// FillField fills a single required field outside the batch flow. The
// sanitizer uses it to repair fields it had to blank out.
func (e *Engine) FillField(ctx context.Context, rec *model.WorkoutRecord, field string) bool {
	if field == model.FieldFlavorText {
		if tmpl := e.tables.ArchetypeFor(rec); tmpl != "" {
			rec.RecordChange(field, rec.TextField(field), tmpl)
			rec.SetTextField(field, tmpl)
			rec.Source = "template"
			return true
		}
	}

	value, err := e.gen.Generate(ctx, backend.Request{Record: *rec, Field: field})
	if err != nil {
		zap.L().Warn("enrich: refill failed",
			zap.String("workout", rec.Name),
			zap.String("field", field),
			zap.Error(err),
		)
		return false
	}
	rec.RecordChange(field, rec.TextField(field), value)
	rec.SetTextField(field, value)
	rec.Source = e.gen.Name()
	return true
}
