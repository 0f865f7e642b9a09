// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/claritypay/clarity/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Predict runs one application through the decision pipeline.
	Predict(ctx context.Context, app model.Application) (model.Decision, error)

	// Health reports readiness of the model and the decision store.
	Health(ctx context.Context) model.HealthStatus

	// Stats aggregates all recorded decisions.
	Stats(ctx context.Context) model.AggregateStats

	// Recent returns up to limit decision records, most recent first.
	Recent(ctx context.Context, limit int) ([]model.DecisionRecord, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	infoHandler      *InfoHandler
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	predictHandler   *PredictHandler
	recentHandler    *RecentHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, version string) *Server {
	return &Server{
		infoHandler:      NewInfoHandler(version),
		healthHandler:    NewHealthHandler(deps),
		statsHandler:     NewStatsHandler(deps),
		predictHandler:   NewPredictHandler(deps),
		recentHandler:    NewRecentHandler(deps),
		dashboardHandler: newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/predict", MetricsMiddleware(s.predictHandler.HandlePredict, "predict"))
	mux.HandleFunc("/recent", MetricsMiddleware(s.recentHandler.HandleRecent, "recent"))
	mux.HandleFunc("/", MetricsMiddleware(s.infoHandler.HandleInfo, "info"))
}

type errorResponse struct {
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
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
