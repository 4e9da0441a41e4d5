// Package api serves the schedule analytics over HTTP
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/internal/config"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/services"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/db"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Handler answers the analytics endpoints from the current snapshot
type Handler struct {
	snapshots services.SnapshotLoader
	ratings   db.RatingStore // nil when no store is configured
	logger    *zap.Logger
}

func NewHandler(snapshots services.SnapshotLoader, ratings db.RatingStore, logger *zap.Logger) *Handler {
	return &Handler{snapshots: snapshots, ratings: ratings, logger: logger}
}

// NewRouter wires the middleware chain and routes
func NewRouter(cfg config.Server, h *Handler, logger *zap.Logger) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	if cfg.RequestsPerMinute > 0 {
		router.Use(httprate.LimitByIP(cfg.RequestsPerMinute, time.Minute))
	}
	router.Use(middleware.Timeout(requestTimeout))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/shift-counts", h.ShiftCounts)
		r.Get("/volume", h.Volume)
		r.Get("/compliance", h.Compliance)
		r.Get("/utilization", h.Utilization)
		r.Get("/coverage", h.Coverage)
		r.Get("/replacements", h.Replacements)
		r.Get("/violations", h.Violations)

		r.Route("/providers/{name}", func(r chi.Router) {
			r.Get("/consecutive", h.Consecutive)
			r.Get("/satisfaction", h.Satisfaction)
		})

		r.Post("/ratings", h.RecordRating)
	})

	return router
}

// Serve runs the server until ctx is cancelled, then drains in-flight requests
func Serve(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
