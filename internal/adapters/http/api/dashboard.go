package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	service "github.com/okian/expertlens/internal/app"
	"github.com/okian/expertlens/internal/domain/aggregate"
	"github.com/okian/expertlens/internal/domain/model"
)

// DashboardDependencies defines the interface for session reads.
type DashboardDependencies interface {
	Dashboard(ctx context.Context, sessionID string) (aggregate.Stats, error)
	Experts(ctx context.Context, sessionID string, limit, offset int) (service.ExpertsPage, error)
}

// DashboardHandler handles dashboard and expert listing requests.
type DashboardHandler struct {
	deps         DashboardDependencies
	defaultLimit int
	maxLimit     int
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies, defaultLimit, maxLimit int) *DashboardHandler {
	d := DefaultLimits()
	if defaultLimit <= 0 {
		defaultLimit = d.DefaultPageLimit
	}
	if maxLimit < defaultLimit {
		maxLimit = max(defaultLimit, d.MaxPageLimit)
	}
	return &DashboardHandler{deps: deps, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// HandleDashboard handles GET /api/dashboard/{session_id}.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard"
	stats, err := h.deps.Dashboard(r.Context(), chi.URLParam(r, "session_id"))
	if err != nil {
		writeKindError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{Success: true, Message: "ok", Stats: stats})
}

// HandleExperts handles GET /api/dashboard/{session_id}/experts?limit=N&offset=M.
// Limits above the configured maximum are capped.
func (h *DashboardHandler) HandleExperts(w http.ResponseWriter, r *http.Request) {
	const op = "api.experts"
	q := r.URL.Query()

	limit, err := intParam(q.Get("limit"), h.defaultLimit)
	if err != nil || limit < 1 {
		writeKindError(w, NewKind(op, ErrBadRequest))
		return
	}
	offset, err := intParam(q.Get("offset"), 0)
	if err != nil || offset < 0 {
		writeKindError(w, NewKind(op, ErrBadRequest))
		return
	}

	page, err := h.deps.Experts(r.Context(), chi.URLParam(r, "session_id"), min(limit, h.maxLimit), offset)
	if err != nil {
		writeKindError(w, Wrap(op, err))
		return
	}
	data := page.Data
	if data == nil {
		data = []model.Profile{}
	}
	writeJSON(w, http.StatusOK, expertsResponse{Success: true, Total: page.Total, Data: data})
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
