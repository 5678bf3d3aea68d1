package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homedecor/internal/analytics"
	"homedecor/internal/api"
	"homedecor/internal/decoration"
	"homedecor/internal/decorator"
	"homedecor/internal/payment"
	"homedecor/internal/tracking"
	"homedecor/internal/user"
	"homedecor/pkg/checkout"
	"homedecor/pkg/config"
)

type Dependencies struct {
	Cfg config.Config
	DB  *pgxpool.Pool
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(api.CORSMiddleware(api.CORSOptions{
		AllowedOrigins: deps.Cfg.AllowedOrigins,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	usersRepo := user.NewRepository(deps.DB)
	decorationsRepo := decoration.NewRepository(deps.DB)
	decoratorsRepo := decorator.NewRepository(deps.DB)
	paymentsRepo := payment.NewRepository(deps.DB)
	trackingRepo := tracking.NewRepository(deps.DB)
	statsRepo := analytics.NewRepository(deps.DB)

	checkoutClient := checkout.Client{SecretKey: deps.Cfg.Checkout.SecretKey}

	userHandlers := user.Handlers{Users: usersRepo}
	decorationHandlers := decoration.Handlers{DB: deps.DB, Decorations: decorationsRepo}
	decoratorHandlers := decorator.Handlers{Cfg: deps.Cfg, DB: deps.DB, Decorators: decoratorsRepo}
	paymentHandlers := payment.Handlers{
		Cfg:         deps.Cfg,
		Decorations: decorationsRepo,
		Payments:    paymentsRepo,
		Checkout:    checkoutClient,
		Reconciler: payment.Reconciler{
			DB:       deps.DB,
			Sessions: checkoutClient,
			Payments: paymentsRepo,
		},
		Users: usersRepo,
	}
	trackingHandlers := tracking.Handlers{Events: trackingRepo}
	analyticsHandlers := analytics.Handlers{Stats: statsRepo}

	authed := api.Authenticate(deps.Cfg)
	admin := api.RequireAdmin(usersRepo)
	decoratorRole := api.RequireDecorator(usersRepo)

	r.Route("/v1", func(r chi.Router) {
		// Public browse + sign-up surface.
		r.Get("/decorations", decorationHandlers.List)
		r.Get("/decorations/decorator", decorationHandlers.ListForDecorator)
		r.Get("/decorations/{id}", decorationHandlers.Get)
		r.Get("/decorators", decoratorHandlers.List)
		r.Get("/tracking/{trackingId}", trackingHandlers.Timeline)
		r.Post("/users", userHandlers.Register)
		r.Get("/users/{email}/role", userHandlers.Role)

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(authed)

			r.Post("/decorators", decoratorHandlers.Apply)
			r.Post("/payments/checkout-session", paymentHandlers.CreateCheckoutSession)
			r.Patch("/payments/success", paymentHandlers.Success)
			r.Get("/payments", paymentHandlers.List)

			// Decorator surface.
			r.With(decoratorRole).Patch("/decorations/{id}/status", decorationHandlers.PatchStatus)

			// Admin surface.
			r.Group(func(r chi.Router) {
				r.Use(admin)

				r.Get("/users", userHandlers.List)
				r.Patch("/users/{id}/role", userHandlers.PatchRole)

				r.Post("/decorations", decorationHandlers.Create)
				r.Patch("/decorations/{id}/assign", decorationHandlers.Assign)
				r.Patch("/decorations/{id}/admin/status", decorationHandlers.AdminSetStatus)
				r.Delete("/decorations/{id}", decorationHandlers.Delete)

				r.Patch("/decorators/{id}", decoratorHandlers.Decide)
				r.Delete("/decorators/{id}", decoratorHandlers.Delete)

				r.Get("/analytics", analyticsHandlers.Summary)
			})
		})
	})

	return r
}
