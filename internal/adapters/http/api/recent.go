// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/claritypay/clarity/internal/domain/model"
)

// RecentDependencies defines the interface for recent decision queries.
type RecentDependencies interface {
	Recent(ctx context.Context, limit int) ([]model.DecisionRecord, error)
}

// RecentHandler handles recent decision requests.
type RecentHandler struct {
	deps RecentDependencies
}

// NewRecentHandler creates a new recent handler.
func NewRecentHandler(deps RecentDependencies) *RecentHandler {
	return &RecentHandler{deps: deps}
}

type recentResponse struct {
	Count   int                    `json:"count"`
	Records []model.DecisionRecord `json:"records"`
}

// HandleRecent handles GET /recent?limit=N requests. A missing limit uses
// the service default; the service caps oversized values.
func (h *RecentHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	const op = "api.recent"
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	records, err := h.deps.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, recentResponse{Count: len(records), Records: records})
}
