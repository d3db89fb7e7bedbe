package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// ValidateArtifact checks a record set before it is published. An empty set
// or a first record missing its core keys means the run went sideways and
// the previous artifact should be left alone.
func ValidateArtifact(records []model.WorkoutRecord) error {
	if len(records) == 0 {
		return eris.New("artifact: no records to publish")
	}

	sample := records[0]
	for _, field := range model.RequiredFields {
		if model.IsEmpty(sample.TextField(field)) {
			return eris.Errorf("artifact: sample record %q is missing %s", sample.Name, field)
		}
	}
	return nil
}

// WriteArtifact validates and writes the final artifact, plus a timestamped
// snapshot when a snapshot directory is configured. The main artifact is
// written via a temp file and rename so a crash mid-write never leaves a
// truncated file behind.
func WriteArtifact(records []model.WorkoutRecord, path, snapshotDir string) error {
	if err := ValidateArtifact(records); err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return eris.Wrap(err, "artifact: marshal")
	}
	data = append(data, '\n')

	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	zap.L().Info("artifact: written", zap.String("path", path), zap.Int("records", len(records)))

	if snapshotDir != "" {
		if err := writeSnapshot(snapshotDir, path, data); err != nil {
			// The artifact itself landed; a failed snapshot is not fatal.
			zap.L().Warn("artifact: snapshot failed", zap.Error(err))
		}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrap(err, "artifact: create output dir")
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*.json")
	if err != nil {
		return eris.Wrap(err, "artifact: create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()          //nolint:errcheck
		os.Remove(tmpName)   //nolint:errcheck
		return eris.Wrap(err, "artifact: write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return eris.Wrap(err, "artifact: close temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return eris.Wrap(err, "artifact: rename into place")
	}
	return nil
}

func writeSnapshot(snapshotDir, artifactPath string, data []byte) error {
	if err := os.MkdirAll(snapshotDir, 0o755); err != nil {
		return eris.Wrap(err, "artifact: create snapshot dir")
	}

	base := filepath.Base(artifactPath)
	ext := filepath.Ext(base)
	stamp := time.Now().UTC().Format("20060102T150405")
	name := base[:len(base)-len(ext)] + "_" + stamp + ext

	snapPath := filepath.Join(snapshotDir, name)
	if err := os.WriteFile(snapPath, data, 0o644); err != nil {
		return eris.Wrap(err, "artifact: write snapshot")
	}
	zap.L().Info("artifact: snapshot written", zap.String("path", snapPath))
	return nil
}

// ReadArtifact loads a previously published artifact.
func ReadArtifact(path string) ([]model.WorkoutRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "artifact: read")
	}

	var records []model.WorkoutRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrap(err, "artifact: unmarshal")
	}
	return records, nil
}
