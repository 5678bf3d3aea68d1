package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"homedecor/internal/api"
)

type Handlers struct {
	Users *Repository
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

func (h Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing email")
		return
	}

	u, created, err := h.Users.Create(r.Context(), req.Email, req.Name, req.PhotoURL)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	if !created {
		api.WriteJSON(w, http.StatusOK, map[string]any{"message": "user exists", "user": u})
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]any{"user": u})
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Users.List(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []User{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Role is public: the frontend asks for its own role right after sign-in,
// before the user record may even exist. Unknown emails default to "user".
func (h Handlers) Role(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing email")
		return
	}

	role, err := h.Users.RoleByEmail(r.Context(), email)
	if err != nil {
		role = RoleUser
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"role": role})
}

type PatchRoleRequest struct {
	Role string `json:"role"`
}

func (h Handlers) PatchRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req PatchRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if !ValidRole(req.Role) {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid role")
		return
	}

	if err := h.Users.UpdateRole(r.Context(), id, req.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
