package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/forgefit-hq/wodforge/internal/model"
	"github.com/forgefit-hq/wodforge/internal/pipeline"
)

var servePort int

// artifactCache serves the published artifact without re-reading the file on
// every request. Entries expire quickly so a fresh pipeline run shows up
// within seconds.
type artifactCache struct {
	mu      sync.Mutex
	path    string
	ttl     time.Duration
	records []model.WorkoutRecord
	loaded  time.Time
}

func (c *artifactCache) get() ([]model.WorkoutRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.records != nil && time.Since(c.loaded) < c.ttl {
		return c.records, nil
	}

	records, err := pipeline.ReadArtifact(c.path)
	if err != nil {
		return nil, err
	}
	c.records = records
	c.loaded = time.Now()
	return records, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the published artifact over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cache := &artifactCache{path: cfg.Output.Path, ttl: 30 * time.Second}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Get("/workouts.json", func(w http.ResponseWriter, _ *http.Request) {
			records, err := cache.get()
			if err != nil {
				zap.L().Error("serve: load artifact", zap.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "artifact unavailable"})
				return
			}
			writeJSON(w, http.StatusOK, records)
		})

		r.Get("/wod", func(w http.ResponseWriter, req *http.Request) {
			records, err := cache.get()
			if err != nil {
				zap.L().Error("serve: load artifact", zap.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "artifact unavailable"})
				return
			}

			day := time.Now()
			if d := req.URL.Query().Get("date"); d != "" {
				parsed, err := time.Parse("2006-01-02", d)
				if err != nil {
					writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
					return
				}
				day = parsed
			}

			wod := pipeline.WorkoutOfTheDay(records, day)
			if wod == nil {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "artifact is empty"})
				return
			}
			writeJSON(w, http.StatusOK, wod)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port), zap.String("artifact", cfg.Output.Path))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
