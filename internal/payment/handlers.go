package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"homedecor/internal/api"
	"homedecor/internal/decoration"
	"homedecor/pkg/checkout"
	"homedecor/pkg/config"
)

// CheckoutClient is the slice of the provider client the handlers need.
type CheckoutClient interface {
	CreateSession(ctx context.Context, p checkout.CreateSessionParams) (*checkout.Session, error)
}

type Handlers struct {
	Cfg         config.Config
	Decorations *decoration.Repository
	Payments    *Repository
	Checkout    CheckoutClient
	Reconciler  Reconciler
	Users       api.RoleLookup
}

type CheckoutSessionRequest struct {
	DecorationID string `json:"decorationId"`
}

// CreateCheckoutSession builds a hosted checkout session for a booking. Cost
// and service name come from the stored booking, not the request, so the
// client cannot price its own checkout.
func (h Handlers) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req CheckoutSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.DecorationID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing decorationId")
		return
	}

	d, err := h.Decorations.GetByID(r.Context(), req.DecorationID)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "decoration not found")
		return
	}
	if d.PaymentStatus == decoration.PaymentPaid {
		api.WriteError(w, http.StatusConflict, "ALREADY_PAID", "decoration is already paid")
		return
	}

	cost, err := decimal.NewFromString(d.Cost)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	s, err := h.Checkout.CreateSession(r.Context(), checkout.CreateSessionParams{
		LineItem: checkout.LineItem{
			Currency:        h.Cfg.Checkout.Currency,
			UnitAmountMinor: CostToMinorUnits(cost),
			ProductName:     "Please pay for: " + d.ServiceName,
			Quantity:        1,
		},
		CustomerEmail: api.CallerEmail(r.Context()),
		Metadata: map[string]string{
			"decorationId":   d.ID,
			"decorationName": d.ServiceName,
		},
		SuccessURL: h.Cfg.Checkout.SiteDomain + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  h.Cfg.Checkout.SiteDomain + "/dashboard/payment-cancelled",
	})
	if err != nil {
		if h.Cfg.AppEnv != "prod" {
			api.WriteError(w, http.StatusInternalServerError, "INTERNAL", fmt.Sprintf("create checkout session failed: %v", err))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"url": s.URL})
}

// Success is where the provider's redirect lands (proxied by the frontend).
// It is the reconciliation entry point and is deliberately idempotent.
func (h Handlers) Success(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing session_id")
		return
	}

	res, err := h.Reconciler.Reconcile(r.Context(), sessionID)
	if err != nil {
		if h.Cfg.AppEnv != "prod" {
			api.WriteError(w, http.StatusInternalServerError, "INTERNAL", fmt.Sprintf("reconcile failed: %v", err))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusOK, res)
}

// List returns the caller's payment history. Reading another customer's
// payments requires the admin role.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	caller := api.CallerEmail(r.Context())
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		email = caller
	}

	if email != caller {
		role, err := h.Users.RoleByEmail(r.Context(), caller)
		if err != nil || role != "admin" {
			api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "forbidden access")
			return
		}
	}

	items, err := h.Payments.ListByCustomer(r.Context(), email)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Payment{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
