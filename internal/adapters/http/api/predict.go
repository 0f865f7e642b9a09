// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claritypay/clarity/internal/domain/model"
	"github.com/claritypay/clarity/internal/domain/scoring"
	"github.com/claritypay/clarity/internal/domain/validate"
)

// PredictDependencies defines the interface for decision operations.
type PredictDependencies interface {
	Predict(ctx context.Context, app model.Application) (model.Decision, error)
}

// PredictHandler handles credit decision requests.
type PredictHandler struct {
	deps PredictDependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps PredictDependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// HandlePredict handles POST /predict requests.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict"
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}

	var app model.Application
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&app); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	decision, err := h.deps.Predict(r.Context(), app)
	if err != nil {
		var verr *validate.Error
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, "validation_error", verr)
		case errors.Is(err, scoring.ErrModelUnavailable):
			writeError(w, http.StatusServiceUnavailable, "model_unavailable", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, decision)
}
