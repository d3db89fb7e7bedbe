package pipeline

import (
	"context"
	"maps"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// Garbage that leaks in from scraped pages and half-rendered templates.
var (
	// SVG path data from a broken crossfit.com scrape; whole instruction
	// cells consist of nothing but this junk.
	svgGarbageRE = regexp.MustCompile(`(?i)171-192-51-51 357-357h576v-72h240v240h-72`)
	// Unrendered template tokens like {name} or {workout}.
	braceTokenRE = regexp.MustCompile(`\{[a-z_]+\}`)
	// Stray HTML/XML fragments.
	markupRE = regexp.MustCompile(`</?[a-zA-Z][^<>]*>`)
	// Runs of spaces/tabs left behind by stripping. Newlines stay; the
	// quality formatter owns blank-line handling.
	spaceRunRE = regexp.MustCompile(`[ \t]{2,}`)
)

// Sanitizer strips garbage patterns out of every text field and refills
// required fields that the stripping emptied.
type Sanitizer struct {
	engine *Engine
}

func NewSanitizer(engine *Engine) *Sanitizer {
	return &Sanitizer{engine: engine}
}

// Sanitize returns cleaned copies of the input records.
func (s *Sanitizer) Sanitize(ctx context.Context, records []model.WorkoutRecord, now time.Time) []model.WorkoutRecord {
	out := make([]model.WorkoutRecord, len(records))
	copy(out, records)

	timestamp := now.UTC().Format(time.RFC3339)
	for i := range out {
		rec := &out[i]
		rec.Changes = maps.Clone(rec.Changes)

		for _, field := range model.TextFieldNames {
			val := rec.TextField(field)
			cleaned := StripGarbage(val)
			if cleaned != val {
				zap.L().Info("sanitize: stripped garbage",
					zap.String("workout", rec.Name),
					zap.String("field", field),
				)
				rec.RecordChange(field, val, cleaned)
				rec.SetTextField(field, cleaned)
			}
		}

		// Instructions reduced to garbage leave nothing to clean from.
		if rec.Instructions == "" && rec.InstructionsClean == "" {
			zap.L().Warn("sanitize: instructions lost to garbage", zap.String("workout", rec.Name))
		} else if rec.InstructionsClean == "" {
			rec.InstructionsClean = rec.Instructions
		}

		for _, field := range model.EnrichableFields {
			if model.IsEmptyOrPlaceholder(rec.TextField(field)) {
				s.engine.FillField(ctx, rec, field)
			}
		}

		rec.NeedsEnrichment = model.MissingFields(rec)
		if rec.NeedsEnrichment == nil {
			rec.NeedsEnrichment = []string{}
		}
		rec.LastCleaned = timestamp
	}
	return out
}

// StripGarbage removes known junk patterns from a field value and tidies the
// whitespace left behind.
func StripGarbage(s string) string {
	if s == "" {
		return s
	}
	s = svgGarbageRE.ReplaceAllString(s, "")
	s = braceTokenRE.ReplaceAllString(s, "")
	s = markupRE.ReplaceAllString(s, "")
	s = spaceRunRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
