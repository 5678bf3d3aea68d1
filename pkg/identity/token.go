package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenClaims struct {
	jwt.RegisteredClaims

	// The auth frontend issues tokens with the signed-in email as a custom claim.
	Email string `json:"email,omitempty"`
}

type Identity struct {
	Email     string
	ExpiresAt time.Time
}

// Verify checks an identity token (JWT, HS256) against the shared secret and
// returns the caller email bound to it. Expiry and not-before are validated
// against the supplied clock.
func Verify(tokenString string, secret string, now time.Time) (*Identity, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}
	if secret == "" {
		return nil, fmt.Errorf("missing auth secret")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	claims := &TokenClaims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
		return nil, fmt.Errorf("token expired")
	}
	if claims.NotBefore != nil && claims.NotBefore.Time.After(now) {
		return nil, fmt.Errorf("token not active yet")
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		// Some issuers put the email in the subject instead.
		email = strings.ToLower(strings.TrimSpace(claims.Subject))
	}
	if email == "" {
		return nil, fmt.Errorf("token has no email claim")
	}

	return &Identity{Email: email, ExpiresAt: claims.ExpiresAt.Time}, nil
}
