package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rimaylabs/rimay/internal/model"
)

// HealthHandler reports service liveness and the model lifecycle state.
type HealthHandler struct {
	guard *model.Guard
}

// NewHealthHandler creates a health handler backed by the model guard.
func NewHealthHandler(guard *model.Guard) *HealthHandler {
	return &HealthHandler{guard: guard}
}

// SetupHealthRoutes registers the health route on the router.
func (h *HealthHandler) SetupHealthRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)
}

type healthResponse struct {
	OK            bool    `json:"ok"`
	ModelStatus   string  `json:"model_status"`
	ModelError    *string `json:"model_error"`
	ModelLoadedAt *string `json:"model_loaded_at"`
}

// HandleHealth handles GET /health. It always answers 200: the service is
// alive even while the model is loading or errored.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	snap := h.guard.Snapshot()

	resp := healthResponse{
		OK:          snap.State != model.StateError,
		ModelStatus: string(snap.State),
	}
	if snap.LastError != "" {
		e := snap.LastError
		resp.ModelError = &e
	}
	if snap.LoadedAt != nil {
		t := snap.LoadedAt.Format(time.RFC3339)
		resp.ModelLoadedAt = &t
	}

	writeJSON(w, http.StatusOK, resp)
}
