// Package api implements the HTTP layer for the disaster simulation service.
// Handlers are methods on *Server. Each handler file is responsible for one
// resource group and only imports the dependencies it actually uses.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/p76267557-droid/kelompok-irpan/internal/risk"
	"github.com/p76267557-droid/kelompok-irpan/internal/store"
)

// Service identity served by GET /api/health.
const (
	serviceName    = "Disaster Simulation API"
	serviceVersion = "1.0.0"
)

// Disaster type route segments. These are the only valid values for the
// {disasterType} URL parameter on both endpoints.
const (
	disasterEarthquake = "gempa"
	disasterFlood      = "banjir"
	disasterFire       = "kebakaran"
)

// HistoryStore is the persistence surface the handlers need. *store.Store
// satisfies it; tests substitute an in-memory stub.
//
// Record* failures are best-effort from the handler's point of view: the
// handler logs them and still returns the computed result. Recent* failures
// surface to the caller as a server error.
type HistoryStore interface {
	RecordEarthquake(ctx context.Context, in risk.EarthquakeInput, params json.RawMessage, res risk.Result) error
	RecentEarthquake(ctx context.Context, limit int) ([]store.EarthquakeRecord, error)

	RecordFlood(ctx context.Context, in risk.FloodInput, params json.RawMessage, res risk.Result) error
	RecentFlood(ctx context.Context, limit int) ([]store.FloodRecord, error)

	RecordFire(ctx context.Context, in risk.FireInput, params json.RawMessage, res risk.Result) error
	RecentFire(ctx context.Context, limit int) ([]store.FireRecord, error)
}

// Config holds values read from environment variables at startup.
type Config struct {
	// AllowedOrigin is the CORS origin allowed in production. Development
	// reflects the request origin so any local frontend works.
	AllowedOrigin string

	// Env is "production", "staging", or "development".
	Env string
}

// Server holds all shared dependencies. Each handler file attaches methods to
// this type and uses only the fields it needs.
type Server struct {
	store  HistoryStore
	cfg    Config
	logger *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.ListenAndServe.
func NewServer(st HistoryStore, cfg Config, logger *slog.Logger) http.Handler {
	s := &Server{
		store:  st,
		cfg:    cfg,
		logger: logger,
	}
	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/calculate/{disasterType}", s.handleCalculate)
		r.Get("/history/{disasterType}", s.handleHistory)
	})

	return r
}

// handleHealth is the liveness probe. Fixed identity payload, no envelope.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}
