package decoration

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"homedecor/internal/api"
	"homedecor/internal/decorator"
	"homedecor/internal/tracking"
	"homedecor/pkg/db"
)

type Handlers struct {
	DB          *pgxpool.Pool
	Decorations *Repository
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Decorations.List(r.Context(), ListFilter{
		AdminEmail: r.URL.Query().Get("email"),
		Status:     r.URL.Query().Get("decorationStatus"),
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Decoration{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) ListForDecorator(w http.ResponseWriter, r *http.Request) {
	items, err := h.Decorations.ListByDecorator(r.Context(), DecoratorListFilter{
		DecoratorEmail: r.URL.Query().Get("decoratorEmail"),
		WorkStatus:     r.URL.Query().Get("workStatus"),
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Decoration{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	d, err := h.Decorations.GetByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, d)
}

// writeLookupError maps a repository lookup failure: a missing row is 404,
// anything else is a store failure.
func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, pgx.ErrNoRows) {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "decoration not found")
		return
	}
	api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
}

type CreateRequest struct {
	ServiceName   string `json:"serviceName"`
	Cost          string `json:"cost"`
	CustomerEmail string `json:"customerEmail"`
}

// Create books a decoration in the initial pending state. The owning admin is
// the authenticated caller.
func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if strings.TrimSpace(req.ServiceName) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing serviceName")
		return
	}
	cost, err := decimal.NewFromString(strings.TrimSpace(req.Cost))
	if err != nil || cost.LessThanOrEqual(decimal.Zero) {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "cost must be a positive amount")
		return
	}

	d, err := h.Decorations.Insert(r.Context(), CreateInput{
		ServiceName:   req.ServiceName,
		Cost:          cost,
		AdminEmail:    api.CallerEmail(r.Context()),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusCreated, d)
}

type AssignRequest struct {
	DecoratorID    string `json:"decoratorId"`
	DecoratorName  string `json:"decoratorName"`
	DecoratorEmail string `json:"decoratorEmail"`
}

// Assign attaches a decorator to a paid booking. In one transaction the
// booking moves to materials_prepared and the decorator's work status flips
// to in_delivery.
func (h Handlers) Assign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.DecoratorID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing decoratorId")
		return
	}

	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		d, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		if !CanTransition(d.DecorationStatus, StatusMaterialsPrepared) {
			api.WriteError(w, http.StatusConflict, "INVALID_STATE_TRANSITION", "decoration is not awaiting assignment")
			return pgx.ErrTxCommitRollback
		}

		if err := AssignDecorator(r.Context(), tx, d.ID, req.DecoratorID, req.DecoratorName, req.DecoratorEmail); err != nil {
			return err
		}
		if err := decorator.SetWorkStatus(r.Context(), tx, req.DecoratorID, decorator.WorkInDelivery); err != nil {
			return err
		}
		if d.TrackingID != "" {
			if err := tracking.Insert(r.Context(), tx, d.TrackingID, string(StatusMaterialsPrepared), "Decorator assigned: "+req.DecoratorName); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "decoration not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type PatchStatusRequest struct {
	DecorationStatus string `json:"decorationStatus"`
	DecoratorID      string `json:"decoratorId"`
}

// PatchStatus advances a booking along the lifecycle. Unrecognized target
// statuses are rejected rather than persisted, and only the completion step
// can be set here; the payment and assignment steps happen through their own
// operations. Reaching setup_completed also frees the decorator in the same
// transaction.
func (h Handlers) PatchStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req PatchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	next, err := ParseStatus(req.DecorationStatus)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		d, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		if !CanTransitionDirectly(d.DecorationStatus, next) {
			api.WriteError(w, http.StatusConflict, "INVALID_STATE_TRANSITION", "invalid state transition")
			return pgx.ErrTxCommitRollback
		}

		if err := UpdateStatus(r.Context(), tx, d.ID, next); err != nil {
			return err
		}

		if next == StatusSetupCompleted {
			decoratorID := req.DecoratorID
			if decoratorID == "" {
				decoratorID = d.DecoratorID
			}
			if decoratorID != "" {
				if err := decorator.SetWorkStatus(r.Context(), tx, decoratorID, decorator.WorkAvailable); err != nil {
					return err
				}
			}
		}

		if d.TrackingID != "" {
			if err := tracking.Insert(r.Context(), tx, d.TrackingID, string(next), ""); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "decoration not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type AdminSetStatusRequest struct {
	DecorationStatus string `json:"decorationStatus"`
}

// AdminSetStatus is the privileged direct-set escape hatch: it bypasses the
// transition table but still requires a recognized status value, and it
// carries no decorator side effects.
func (h Handlers) AdminSetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req AdminSetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	next, err := ParseStatus(req.DecorationStatus)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		d, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}
		if err := UpdateStatus(r.Context(), tx, d.ID, next); err != nil {
			return err
		}
		if d.TrackingID != "" {
			if err := tracking.Insert(r.Context(), tx, d.TrackingID, string(next), "Status set by admin"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "decoration not found")
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

	if err := h.Decorations.Delete(r.Context(), id); err != nil {
		writeLookupError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
