package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// Stub is the offline generator: deterministic, rule-based content derived
// from what the record already carries. Same input, same output, every run.
type Stub struct{}

func NewStub() *Stub { return &Stub{} }

func (s *Stub) Name() string { return "stub" }

func (s *Stub) Generate(_ context.Context, req Request) (string, error) {
	w := req.Record
	switch req.Field {
	case model.FieldDescription:
		return stubDescription(w), nil
	case model.FieldFlavorText:
		return fmt.Sprintf("%s – Honest work, no frills; move well and keep the clock honest.", displayName(w)), nil
	case model.FieldCoachNotes:
		return "Warm up thoroughly, break sets before failure, and hold a pace you can repeat. Technique comes first; add intensity once movement quality is locked in.", nil
	case model.FieldMovementTypes:
		return inferMovementTypes(w), nil
	case model.FieldDifficultyTier:
		return inferDifficultyTier(w), nil
	}
	return "", fmt.Errorf("stub: no rule for field %s", req.Field)
}

func displayName(w model.WorkoutRecord) string {
	if w.Name != "" {
		return w.Name
	}
	return "This workout"
}

func stubDescription(w model.WorkoutRecord) string {
	category := strings.ToLower(w.Category)
	if category == "" {
		category = "conditioning"
	}
	score := w.ScoreType
	if score == "" {
		score = "completion"
	}
	return fmt.Sprintf("%s is a %s workout scored by %s. Work through the prescribed movements at a steady, repeatable effort, scaling loads and reps so the intended stimulus stays intact.",
		displayName(w), category, strings.ToLower(score))
}

// movementKeywords maps instruction substrings to movement families.
var movementKeywords = []struct {
	words  []string
	family string
}{
	{[]string{"run", "row", "bike", "ski", "swim", "jump rope", "double-under", "double under"}, "Monostructural"},
	{[]string{"snatch", "clean", "jerk", "deadlift", "thruster", "squat", "press", "kettlebell", "dumbbell", "barbell", "wall ball", "wall-ball"}, "Weightlifting"},
	{[]string{"pull-up", "pull up", "push-up", "push up", "dip", "handstand", "muscle-up", "muscle up", "toes-to-bar", "toes to bar", "sit-up", "sit up", "burpee", "lunge", "rope climb"}, "Gymnastics"},
}

func inferMovementTypes(w model.WorkoutRecord) string {
	text := strings.ToLower(w.Instructions + " " + w.InstructionsClean)
	var families []string
	for _, mk := range movementKeywords {
		for _, word := range mk.words {
			if strings.Contains(text, word) {
				families = append(families, mk.family)
				break
			}
		}
	}
	if len(families) == 0 {
		return "Mixed Modal"
	}
	return strings.Join(families, ", ")
}

func inferDifficultyTier(w model.WorkoutRecord) string {
	switch strings.ToLower(strings.TrimSpace(w.Level)) {
	case "beginner", "novice":
		return "Beginner"
	case "advanced", "rx+", "elite":
		return "Advanced"
	}
	return "Intermediate"
}
