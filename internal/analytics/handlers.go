package analytics

import (
	"net/http"

	"homedecor/internal/api"
)

type Handlers struct {
	Stats *Repository
}

func (h Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.Stats.Summarize(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusOK, s)
}
