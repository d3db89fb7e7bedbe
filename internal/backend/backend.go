// Package backend provides the pluggable text generators behind the
// enrichment engine: a deterministic offline stub and the Anthropic-backed
// remote generator. The engine only sees the Generator interface; which one
// it gets is decided by configuration at startup.
package backend

import (
	"context"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// Request asks a generator to produce the content of one field of one
// workout record.
type Request struct {
	Record model.WorkoutRecord
	Field  string
}

// Generator produces field content for workout records.
type Generator interface {
	// Name identifies the generator in audit annotations and logs.
	Name() string
	// Generate returns prose for the requested field. Errors are
	// per-record: the caller logs them and moves on.
	Generate(ctx context.Context, req Request) (string, error)
}
