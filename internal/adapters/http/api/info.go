// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// InfoHandler handles service info requests at the root path.
type InfoHandler struct {
	version string
}

// NewInfoHandler creates a new info handler.
func NewInfoHandler(version string) *InfoHandler {
	return &InfoHandler{version: version}
}

type infoResponse struct {
	Service      string   `json:"service"`
	ModelVersion string   `json:"model_version"`
	Endpoints    []string `json:"endpoints"`
}

// HandleInfo handles GET / requests. Any other path under the catch-all
// route is a 404.
func (h *InfoHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, infoResponse{
		Service:      "clarity credit decision api",
		ModelVersion: h.version,
		Endpoints:    []string{"/predict", "/health", "/stats", "/recent", "/dashboard", "/metrics"},
	})
}
