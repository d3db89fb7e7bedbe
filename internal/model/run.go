package model

import "time"

// RunStatus represents the current state of a pipeline run.
type RunStatus string

const (
	RunStatusQueued    RunStatus = "queued"
	RunStatusIngesting RunStatus = "ingesting"
	RunStatusEnriching RunStatus = "enriching"
	RunStatusGating    RunStatus = "gating"
	RunStatusComplete  RunStatus = "complete"
	RunStatusFailed    RunStatus = "failed"
)

// Run represents a single end-to-end pipeline run.
type Run struct {
	ID        string      `json:"id"`
	Source    string      `json:"source"` // input file path
	Status    RunStatus   `json:"status"`
	Summary   *RunSummary `json:"summary,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RunSummary holds the final counts of a run.
type RunSummary struct {
	RowsRead          int           `json:"rows_read"`
	Ingested          int           `json:"ingested"`
	RowsDropped       int           `json:"rows_dropped"`
	NeedsEnrichment   int           `json:"needs_enrichment"`
	NeedsRevalidation int           `json:"needs_revalidation"`
	TemplatesApplied  int           `json:"templates_applied"`
	BackendEnriched   int           `json:"backend_enriched"`
	BackendFailed     int           `json:"backend_failed"`
	GateDropped       int           `json:"gate_dropped"`
	Published         int           `json:"published"`
	Stages            []StageResult `json:"stages"`
	Error             string        `json:"error,omitempty"`
}

// StageStatus represents the state of a single pipeline stage.
type StageStatus string

const (
	StageStatusRunning  StageStatus = "running"
	StageStatusComplete StageStatus = "complete"
	StageStatusFailed   StageStatus = "failed"
)

// StageResult holds the outcome of one pipeline stage.
type StageResult struct {
	Name     string      `json:"name"`
	Status   StageStatus `json:"status"`
	Duration int64       `json:"duration_ms"`
	Records  int         `json:"records"`
	Error    string      `json:"error,omitempty"`
}

// RunStage is a stage row persisted alongside its run.
type RunStage struct {
	ID        string       `json:"id"`
	RunID     string       `json:"run_id"`
	Name      string       `json:"name"`
	Status    StageStatus  `json:"status"`
	Result    *StageResult `json:"result,omitempty"`
	StartedAt time.Time    `json:"started_at"`
}
