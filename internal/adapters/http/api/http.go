// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/expertlens/internal/domain/aggregate"
	"github.com/okian/expertlens/internal/domain/model"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	UploadDependencies
	DashboardDependencies
}

// Limits bounds request sizes and page sizes.
type Limits struct {
	MaxUploadBytes   int64
	DefaultPageLimit int
	MaxPageLimit     int
}

// DefaultLimits mirrors the service configuration defaults.
func DefaultLimits() Limits {
	return Limits{MaxUploadBytes: 10 << 20, DefaultPageLimit: 50, MaxPageLimit: 500}
}

// Server wires HTTP routes for the business API.
type Server struct {
	metricsHandler   *MetricsHandler
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	uploadHandler    *UploadHandler
	dashboardHandler *DashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, limits Limits) *Server {
	return &Server{
		metricsHandler:   NewMetricsHandler(),
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		uploadHandler:    NewUploadHandler(deps, limits.MaxUploadBytes),
		dashboardHandler: NewDashboardHandler(deps, limits.DefaultPageLimit, limits.MaxPageLimit),
	}
}

// Router returns the chi router serving everything under /api.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", MetricsMiddleware(s.uploadHandler.HandleUpload, "upload"))
		r.Get("/dashboard/{session_id}", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
		r.Get("/dashboard/{session_id}/experts", MetricsMiddleware(s.dashboardHandler.HandleExperts, "experts"))
		r.Get("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	})
	return r
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.metricsHandler.HandleMetrics, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/api/", s.Router())
}

type uploadResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	TalentCount int    `json:"talent_count"`
	SessionID   string `json:"session_id"`
}

type dashboardResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Stats   aggregate.Stats `json:"stats"`
}

type expertsResponse struct {
	Success bool            `json:"success"`
	Total   int             `json:"total"`
	Data    []model.Profile `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Success: false, Code: code, Message: msg})
}

// writeKindError picks the status from the error kind.
func writeKindError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}
