package pipeline

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// RequiredColumns is the input header contract. Missing any of these is a
// schema failure, not a row problem.
var RequiredColumns = []string{"Name", "Instructions", "Category", "Format & Duration", "Score Type"}

// columnMapping translates spreadsheet headers to artifact field names.
var columnMapping = map[string]string{
	"Name":                  model.FieldName,
	"Category":              model.FieldCategory,
	"Format & Duration":     model.FieldFormatDuration,
	"Score Type":            model.FieldScoreType,
	"Description":           model.FieldDescription,
	"Flavor-Text":           model.FieldFlavorText,
	"Coach Notes":           model.FieldCoachNotes,
	"Warmup":                model.FieldWarmup,
	"Equipment Needed":      model.FieldEquipmentNeeded,
	"Movement Types":        model.FieldMovementTypes,
	"Stimulus":              model.FieldStimulus,
	"Target Stimulus":       model.FieldTargetStimulus,
	"Instructions":          model.FieldInstructions,
	"Instructions_Clean":    model.FieldInstructionsClean,
	"Level":                 model.FieldLevel,
	"DifficultyTier":        model.FieldDifficultyTier,
	"Training Goals":        model.FieldTrainingGoals,
	"Scaling Options":       model.FieldScalingOptions,
	"Coaching-Cues":         model.FieldCoachingCues,
	"Environment":           model.FieldEnvironment,
}

// Columns handled outside the text-field mapping.
const (
	colWorkoutID      = "WorkoutID"
	colScalingTiers   = "Scaling-Tiers"
	colEstimatedTimes = "Estimated-Times"
)

// SchemaError means the input header violates the column contract. It is
// fatal: no rows are processed.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("ingest: missing required columns: %s", strings.Join(e.Missing, ", "))
}

// IngestStats summarizes one ingest pass.
type IngestStats struct {
	RowsRead int
	Ingested int
	Dropped  int
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// Ingest converts raw spreadsheet rows into workout records: header contract
// check, column mapping, lb→kg conversion on every text field, nested JSON
// parsing, and stable ID assignment.
//
// ids maps lowercased workout names to previously assigned IDs (from the
// store's registry); new names get max+1. A nil map starts the sequence at 1.
// The map is updated in place so the caller can persist it afterwards.
// IDs stay unique within a run: repeated names (case-insensitive) drop the
// later row, and a WorkoutID cell pointing at a taken ID allocates max+1.
func Ingest(header []string, rows [][]string, ids map[string]int, now time.Time) ([]model.WorkoutRecord, IngestStats, error) {
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := colIdx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, IngestStats{}, &SchemaError{Missing: missing}
	}

	for _, h := range header {
		h = strings.TrimSpace(h)
		if h == colWorkoutID || h == colScalingTiers || h == colEstimatedTimes {
			continue
		}
		if _, ok := columnMapping[h]; !ok {
			zap.L().Debug("ingest: ignoring unmapped column", zap.String("column", h))
		}
	}

	if ids == nil {
		ids = make(map[string]int)
	}
	nextID := 1
	for _, id := range ids {
		if id >= nextID {
			nextID = id + 1
		}
	}

	cell := func(row []string, col string) string {
		i, ok := colIdx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	usedIDs := make(map[int]bool, len(ids))
	for _, id := range ids {
		usedIDs[id] = true
	}
	seen := make(map[string]bool, len(rows))

	timestamp := now.UTC().Format(time.RFC3339)
	stats := IngestStats{RowsRead: len(rows)}
	records := make([]model.WorkoutRecord, 0, len(rows))

	for i, row := range rows {
		name := cell(row, "Name")
		instructions := cell(row, "Instructions")
		if name == "" || instructions == "" {
			stats.Dropped++
			zap.L().Warn("ingest: row dropped",
				zap.Int("row", i+2), // 1-based, after the header
				zap.Bool("missing_name", name == ""),
				zap.Bool("missing_instructions", instructions == ""),
			)
			continue
		}

		key := strings.ToLower(name)
		if seen[key] {
			stats.Dropped++
			zap.L().Warn("ingest: duplicate name dropped",
				zap.Int("row", i+2),
				zap.String("name", name),
			)
			continue
		}

		var rec model.WorkoutRecord
		for col, field := range columnMapping {
			if v := cell(row, col); v != "" {
				rec.SetTextField(field, ConvertWeights(v))
			}
		}

		rec.Instructions = normalizeInstructions(rec.Instructions)
		if rec.InstructionsClean == "" {
			rec.InstructionsClean = rec.Instructions
		} else {
			rec.InstructionsClean = normalizeInstructions(rec.InstructionsClean)
		}

		rec.ScalingTiers = parseScalingTiers(cell(row, colScalingTiers))
		rec.EstimatedTimes = parseEstimatedTimes(cell(row, colEstimatedTimes))
		rec.LastCleaned = timestamp

		switch {
		case ids[key] != 0:
			rec.ID = model.RecordID(ids[key])
		default:
			if v := cell(row, colWorkoutID); v != "" {
				if n, err := strconv.Atoi(v); err == nil && n > 0 {
					if usedIDs[n] {
						zap.L().Warn("ingest: workout id already taken, allocating fresh",
							zap.Int("row", i+2),
							zap.String("name", name),
							zap.Int("id", n),
						)
					} else {
						rec.ID = model.RecordID(n)
					}
				}
			}
			if rec.ID == 0 {
				rec.ID = model.RecordID(nextID)
			}
			ids[key] = rec.ID.Int()
			if rec.ID.Int() >= nextID {
				nextID = rec.ID.Int() + 1
			}
		}
		seen[key] = true
		usedIDs[rec.ID.Int()] = true

		records = append(records, rec)
		stats.Ingested++
	}

	return records, stats, nil
}

// normalizeInstructions lowercases, trims, and collapses whitespace so
// instruction text compares and dedupes cleanly.
func normalizeInstructions(s string) string {
	return whitespaceRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// parseScalingTiers parses a Scaling-Tiers cell. JSON objects map tier name
// to prescription; a bare non-empty string becomes the "Standard" tier.
func parseScalingTiers(v string) map[string]string {
	if model.IsEmpty(v) {
		return nil
	}
	var tiers map[string]string
	if err := json.Unmarshal([]byte(v), &tiers); err == nil && len(tiers) > 0 {
		return tiers
	}
	return map[string]string{"Standard": v}
}

// parseEstimatedTimes parses an Estimated-Times cell into tier → seconds.
// Values may be clock strings ("7:00") or raw second counts.
func parseEstimatedTimes(v string) map[string]int {
	if model.IsEmpty(v) {
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(v), &raw); err != nil {
		return nil
	}

	times := make(map[string]int, len(raw))
	for tier, val := range raw {
		switch t := val.(type) {
		case string:
			if sec, err := ClockToSeconds(t); err == nil {
				times[tier] = sec
			} else if sec, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				times[tier] = sec
			}
		case float64:
			times[tier] = int(t)
		}
	}
	if len(times) == 0 {
		return nil
	}
	return times
}
