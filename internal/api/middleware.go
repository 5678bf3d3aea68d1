package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"homedecor/pkg/config"
	"homedecor/pkg/identity"
)

// RoleLookup resolves the stored role for a caller email. Implemented by the
// user repository.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// Authenticate validates the bearer identity token and binds the verified
// caller email to the request context.
//
// Expected header:
// - Authorization: Bearer <JWT>
//
// A missing or invalid token is UNAUTHORIZED; role checks happen later and
// produce FORBIDDEN, which is a different failure.
func Authenticate(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized access")
				return
			}

			token := strings.TrimSpace(authz[7:])
			id, err := identity.Verify(token, cfg.Auth.JWTSecret, time.Now())
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized access")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCallerEmail(r.Context(), id.Email)))
		})
	}
}

// RequireRole gates a route on the caller's stored role. Must run after
// Authenticate. A missing user record or a role mismatch is FORBIDDEN.
func RequireRole(users RoleLookup, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := CallerEmail(r.Context())
			if email == "" {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized access")
				return
			}

			role, err := users.RoleByEmail(r.Context(), email)
			if err != nil || !allowed[role] {
				WriteError(w, http.StatusForbidden, "FORBIDDEN", "forbidden access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(users RoleLookup) func(http.Handler) http.Handler {
	return RequireRole(users, "admin")
}

func RequireDecorator(users RoleLookup) func(http.Handler) http.Handler {
	return RequireRole(users, "decorator")
}
