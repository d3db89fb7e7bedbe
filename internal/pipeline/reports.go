package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// NeedsEntry is one row of a needs report.
type NeedsEntry struct {
	ID              model.RecordID `json:"id"`
	Name            string         `json:"name"`
	NeedsEnrichment []string       `json:"needsEnrichment,omitempty"`
}

// ReportFiles names the two reports WriteNeedsReports produces.
const (
	EnrichmentReportFile   = "workouts_needing_enrichment.json"
	RevalidationReportFile = "workouts_needing_revalidation.json"
)

// WriteNeedsReports classifies a record set and writes the two operator
// reports: which workouts still need enrichment (and which fields), and
// which need manual revalidation of sourced content.
func WriteNeedsReports(records []model.WorkoutRecord, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrap(err, "reports: create dir")
	}

	cls := Classify(records)

	enrichment := make([]NeedsEntry, 0, len(cls.NeedsEnrichment))
	for _, rec := range cls.NeedsEnrichment {
		enrichment = append(enrichment, NeedsEntry{
			ID:              rec.ID,
			Name:            rec.Name,
			NeedsEnrichment: rec.NeedsEnrichment,
		})
	}

	revalidation := make([]NeedsEntry, 0, len(cls.NeedsRevalidation))
	for _, rec := range cls.NeedsRevalidation {
		revalidation = append(revalidation, NeedsEntry{ID: rec.ID, Name: rec.Name})
	}

	if err := writeReport(filepath.Join(dir, EnrichmentReportFile), enrichment); err != nil {
		return err
	}
	if err := writeReport(filepath.Join(dir, RevalidationReportFile), revalidation); err != nil {
		return err
	}

	zap.L().Info("reports: written",
		zap.String("dir", dir),
		zap.Int("needs_enrichment", len(enrichment)),
		zap.Int("needs_revalidation", len(revalidation)),
	)
	return nil
}

func writeReport(path string, entries []NeedsEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return eris.Wrap(err, "reports: marshal")
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "reports: write")
	}
	return nil
}
