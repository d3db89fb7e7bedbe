package model

import (
	"bytes"
	"strconv"

	"github.com/rotisserie/eris"
)

// RecordID identifies a workout. It is an integer internally (stable,
// monotonically assigned at ingest) but the published artifact carries it as
// a JSON string, so it marshals as "7" and accepts either form on the way in.
type RecordID int

func (id RecordID) Int() int       { return int(id) }
func (id RecordID) String() string { return strconv.Itoa(int(id)) }

func (id RecordID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.Itoa(int(id)))), nil
}

func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return eris.Wrapf(err, "model: parse record id %q", string(data))
	}
	*id = RecordID(n)
	return nil
}

// FieldChange records a single field overwrite for audit logging. It is
// transient: the final gate strips it before the artifact is written.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WorkoutRecord is the unit of data flowing through every pipeline stage.
// JSON tags match the published artifact schema exactly; the front end reads
// these keys verbatim, so they are mixed-case by contract, not by choice.
type WorkoutRecord struct {
	ID                  RecordID          `json:"id"`
	Name                string            `json:"Name"`
	Category            string            `json:"Category"`
	FormatDuration      string            `json:"FormatDuration"`
	ScoreType           string            `json:"ScoreType"`
	Description         string            `json:"Description"`
	FlavorText          string            `json:"Flavor_Text"`
	CoachNotes          string            `json:"CoachNotes"`
	Warmup              string            `json:"Warmup"`
	ScalingTiers        map[string]string `json:"Scaling_Tiers,omitempty"`
	EstimatedTimes      map[string]int    `json:"Estimated_Times,omitempty"`
	EstimatedTimesHuman string            `json:"Estimated_Times_Human,omitempty"`
	EquipmentNeeded     string            `json:"EquipmentNeeded"`
	MovementTypes       string            `json:"MovementTypes"`
	Stimulus            string            `json:"Stimulus"`
	TargetStimulus      string            `json:"TargetStimulus"`
	Instructions        string            `json:"Instructions"`
	InstructionsClean   string            `json:"Instructions_Clean"`
	Level               string            `json:"Level"`
	DifficultyTier      string            `json:"DifficultyTier"`
	TrainingGoals       string            `json:"TrainingGoals"`
	ScalingOptions      string            `json:"ScalingOptions"`
	CoachingCues        string            `json:"Coaching_Cues"`
	Environment         string            `json:"Environment"`
	LastCleaned         string            `json:"lastCleaned"`
	NeedsEnrichment     []string          `json:"needsEnrichment"`
	NeedsRevalidation   bool              `json:"needsRevalidation"`

	// Transient audit annotations. Stages 3-7 write them, the gate zeroes
	// them, so they never reach the published artifact.
	Changes        map[string]FieldChange `json:"changes,omitempty"`
	EnrichedFields []string               `json:"enrichedFields,omitempty"`
	Source         string                 `json:"source,omitempty"`
}

// Field name constants. Values are the artifact JSON keys so log lines,
// needsEnrichment entries, and override tables all speak the same names.
const (
	FieldName              = "Name"
	FieldCategory          = "Category"
	FieldFormatDuration    = "FormatDuration"
	FieldScoreType         = "ScoreType"
	FieldDescription       = "Description"
	FieldFlavorText        = "Flavor_Text"
	FieldCoachNotes        = "CoachNotes"
	FieldWarmup            = "Warmup"
	FieldEquipmentNeeded   = "EquipmentNeeded"
	FieldMovementTypes     = "MovementTypes"
	FieldStimulus          = "Stimulus"
	FieldTargetStimulus    = "TargetStimulus"
	FieldInstructions      = "Instructions"
	FieldInstructionsClean = "Instructions_Clean"
	FieldLevel             = "Level"
	FieldDifficultyTier    = "DifficultyTier"
	FieldTrainingGoals     = "TrainingGoals"
	FieldScalingOptions    = "ScalingOptions"
	FieldCoachingCues      = "Coaching_Cues"
	FieldEnvironment       = "Environment"
)

// TextFieldNames lists every free-text field, in artifact order. Stages that
// sweep "all text fields" (unit conversion, sanitizing, the gate denylist)
// iterate this list instead of hand-picking struct members.
var TextFieldNames = []string{
	FieldName,
	FieldCategory,
	FieldFormatDuration,
	FieldScoreType,
	FieldDescription,
	FieldFlavorText,
	FieldCoachNotes,
	FieldWarmup,
	FieldEquipmentNeeded,
	FieldMovementTypes,
	FieldStimulus,
	FieldTargetStimulus,
	FieldInstructions,
	FieldInstructionsClean,
	FieldLevel,
	FieldDifficultyTier,
	FieldTrainingGoals,
	FieldScalingOptions,
	FieldCoachingCues,
	FieldEnvironment,
}

// EnrichableFields are the text fields the classifier watches and the
// enrichment engine is allowed to fill. Instructions_Clean is excluded: it is
// derived mechanically from Instructions, never generated.
var EnrichableFields = []string{
	FieldDescription,
	FieldFlavorText,
	FieldCoachNotes,
	FieldMovementTypes,
	FieldDifficultyTier,
}

// RequiredFields must be non-empty for a record to pass the final gate.
// Instructions is special-cased by the gate: either Instructions or
// Instructions_Clean satisfies it, so neither appears here.
var RequiredFields = []string{
	FieldName,
	FieldCategory,
	FieldFormatDuration,
	FieldScoreType,
	FieldDescription,
	FieldCoachNotes,
	FieldFlavorText,
	FieldMovementTypes,
	FieldDifficultyTier,
}

// TextField returns the value of a text field by its artifact name.
// Unknown names return "".
func (w *WorkoutRecord) TextField(name string) string {
	switch name {
	case FieldName:
		return w.Name
	case FieldCategory:
		return w.Category
	case FieldFormatDuration:
		return w.FormatDuration
	case FieldScoreType:
		return w.ScoreType
	case FieldDescription:
		return w.Description
	case FieldFlavorText:
		return w.FlavorText
	case FieldCoachNotes:
		return w.CoachNotes
	case FieldWarmup:
		return w.Warmup
	case FieldEquipmentNeeded:
		return w.EquipmentNeeded
	case FieldMovementTypes:
		return w.MovementTypes
	case FieldStimulus:
		return w.Stimulus
	case FieldTargetStimulus:
		return w.TargetStimulus
	case FieldInstructions:
		return w.Instructions
	case FieldInstructionsClean:
		return w.InstructionsClean
	case FieldLevel:
		return w.Level
	case FieldDifficultyTier:
		return w.DifficultyTier
	case FieldTrainingGoals:
		return w.TrainingGoals
	case FieldScalingOptions:
		return w.ScalingOptions
	case FieldCoachingCues:
		return w.CoachingCues
	case FieldEnvironment:
		return w.Environment
	}
	return ""
}

// SetTextField sets a text field by its artifact name. Unknown names are
// ignored so stale override tables cannot corrupt a record.
func (w *WorkoutRecord) SetTextField(name, value string) {
	switch name {
	case FieldName:
		w.Name = value
	case FieldCategory:
		w.Category = value
	case FieldFormatDuration:
		w.FormatDuration = value
	case FieldScoreType:
		w.ScoreType = value
	case FieldDescription:
		w.Description = value
	case FieldFlavorText:
		w.FlavorText = value
	case FieldCoachNotes:
		w.CoachNotes = value
	case FieldWarmup:
		w.Warmup = value
	case FieldEquipmentNeeded:
		w.EquipmentNeeded = value
	case FieldMovementTypes:
		w.MovementTypes = value
	case FieldStimulus:
		w.Stimulus = value
	case FieldTargetStimulus:
		w.TargetStimulus = value
	case FieldInstructions:
		w.Instructions = value
	case FieldInstructionsClean:
		w.InstructionsClean = value
	case FieldLevel:
		w.Level = value
	case FieldDifficultyTier:
		w.DifficultyTier = value
	case FieldTrainingGoals:
		w.TrainingGoals = value
	case FieldScalingOptions:
		w.ScalingOptions = value
	case FieldCoachingCues:
		w.CoachingCues = value
	case FieldEnvironment:
		w.Environment = value
	}
}

// RecordChange notes a field overwrite in the transient changes map.
func (w *WorkoutRecord) RecordChange(field, from, to string) {
	if w.Changes == nil {
		w.Changes = make(map[string]FieldChange)
	}
	w.Changes[field] = FieldChange{From: from, To: to}
}
