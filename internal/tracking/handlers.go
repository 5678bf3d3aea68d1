package tracking

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"homedecor/internal/api"
)

type Handlers struct {
	Events *Repository
}

// Timeline is public: the tracking id is the customer's reference code and
// carries no account data.
func (h Handlers) Timeline(w http.ResponseWriter, r *http.Request) {
	trackingID := chi.URLParam(r, "trackingId")
	if trackingID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing tracking id")
		return
	}

	items, err := h.Events.ListByTrackingID(r.Context(), trackingID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if len(items) == 0 {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "unknown tracking id")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
