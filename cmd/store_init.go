package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/forgefit-hq/wodforge/internal/backend"
	"github.com/forgefit-hq/wodforge/internal/store"
	anthropicpkg "github.com/forgefit-hq/wodforge/pkg/anthropic"
)

// initStore builds the configured store. A "none" (or empty) driver returns
// nil: the pipeline runs without run history and mints workout IDs from row
// order alone.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "", "none":
		return nil, nil
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "wodforge.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initGenerator picks the enrichment backend per config: the Claude-backed
// generator when a key is available (or forced), the deterministic stub
// otherwise.
func initGenerator() backend.Generator {
	if !cfg.UseRemoteBackend() {
		return backend.NewStub()
	}

	client := anthropicpkg.NewClient(cfg.Anthropic.Key)
	return backend.NewRemote(client, backend.RemoteOptions{
		Model:          cfg.Anthropic.Model,
		MaxTokens:      cfg.Anthropic.MaxTokens,
		RequestsPerSec: cfg.Enrichment.RequestsPerSec,
		Timeout:        time.Duration(cfg.Enrichment.TimeoutSecs) * time.Second,
	})
}
