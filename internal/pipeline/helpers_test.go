package pipeline

import (
	"time"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// completeRecord builds a record that passes the gate untouched. Tests break
// individual fields from here.
func completeRecord(id int, name string) model.WorkoutRecord {
	return model.WorkoutRecord{
		ID:                model.RecordID(id),
		Name:              name,
		Category:          "Benchmark",
		FormatDuration:    "For Time",
		ScoreType:         "Time",
		Description:       "A fast benchmark couplet that tests power output and grip under fatigue.",
		FlavorText:        "Hand-written coach copy that should never be replaced.",
		CoachNotes:        "Break the middle round early and keep transitions under five seconds.",
		MovementTypes:     "Weightlifting, Gymnastics",
		DifficultyTier:    "Intermediate",
		Instructions:      "21-15-9 thrusters 43.1/29.5 kg and pull-ups",
		InstructionsClean: "21-15-9 thrusters 43.1/29.5 kg and pull-ups",
		LastCleaned:       time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
		NeedsEnrichment:   []string{},
	}
}
