package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homedecor/pkg/config"
	"homedecor/pkg/identity"
)

type stubRoles struct {
	roles map[string]string
}

func (s stubRoles) RoleByEmail(ctx context.Context, email string) (string, error) {
	role, ok := s.roles[email]
	if !ok {
		return "", errors.New("no rows")
	}
	return role, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func signIdentity(t *testing.T, email, secret string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, identity.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
		},
		Email: email,
	})
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func testConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret"}}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	h := Authenticate(testConfig())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	h := Authenticate(testConfig())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_BindsCallerEmail(t *testing.T) {
	var got string
	h := Authenticate(testConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CallerEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signIdentity(t, "admin@example.com", "test-secret"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@example.com", got)
}

func TestRequireAdmin_ForbiddenIsNotUnauthorized(t *testing.T) {
	roles := stubRoles{roles: map[string]string{
		"admin@example.com": "admin",
		"user@example.com":  "user",
	}}

	tests := []struct {
		name  string
		email string
		want  int
	}{
		{"admin passes", "admin@example.com", http.StatusOK},
		{"plain user forbidden", "user@example.com", http.StatusForbidden},
		{"unknown caller forbidden", "ghost@example.com", http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := RequireAdmin(roles)(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req = req.WithContext(WithCallerEmail(req.Context(), tc.email))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRequireDecorator(t *testing.T) {
	roles := stubRoles{roles: map[string]string{"deco@example.com": "decorator"}}

	h := RequireDecorator(roles)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(WithCallerEmail(req.Context(), "deco@example.com"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_NoCaller(t *testing.T) {
	h := RequireAdmin(stubRoles{})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
