package decorator

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homedecor/internal/api"
	"homedecor/internal/user"
	"homedecor/pkg/config"
	"homedecor/pkg/db"
)

type Handlers struct {
	Cfg        config.Config
	DB         *pgxpool.Pool
	Decorators *Repository
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Decorators.List(r.Context(), ListFilter{
		Status:     r.URL.Query().Get("status"),
		WorkStatus: r.URL.Query().Get("workStatus"),
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Decorator{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type ApplyRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Apply registers a decorator application in pending status. The applicant's
// user account keeps the plain user role until an admin approves.
func (h Handlers) Apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		// Fall back to the authenticated caller.
		req.Email = api.CallerEmail(r.Context())
	}
	if req.Email == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing email")
		return
	}

	d, err := h.Decorators.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]any{"decorator": d})
}

type DecideRequest struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

// Decide applies the admin's approve/decline decision. Approval is one-way:
// on "approved" the linked user account (matched case-insensitively by email)
// gains the decorator role in the same transaction.
func (h Handlers) Decide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Status != StatusApproved && req.Status != StatusPending {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}

	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		d, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		if err := SetStatus(r.Context(), tx, d.ID, req.Status); err != nil {
			return err
		}

		if req.Status == StatusApproved {
			email := req.Email
			if email == "" {
				email = d.Email
			}
			changed, err := user.GrantDecoratorRole(r.Context(), tx, email)
			if err != nil {
				return err
			}
			if changed == 0 && h.Cfg.AppEnv != "prod" {
				log.Printf("decorator approval: no user account matched email=%s", email)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "decorator not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	if err := h.Decorators.Delete(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "decorator not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
