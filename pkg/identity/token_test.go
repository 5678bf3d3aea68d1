package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims TokenClaims, secret string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestVerify_EmailClaim(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	s := signToken(t, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		},
		Email: "Admin@Example.com",
	}, secret)

	got, err := Verify(s, secret, now)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Email != "admin@example.com" {
		t.Fatalf("email mismatch: %q", got.Email)
	}
}

func TestVerify_SubjectFallback(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	s := signToken(t, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "someone@example.com",
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	}, secret)

	got, err := Verify(s, secret, now)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Email != "someone@example.com" {
		t.Fatalf("email mismatch: %q", got.Email)
	}
}

func TestVerify_Expired(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	s := signToken(t, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		},
		Email: "late@example.com",
	}, secret)

	if _, err := Verify(s, secret, now); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)

	s := signToken(t, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
		Email: "user@example.com",
	}, "secret_a")

	if _, err := Verify(s, "secret_b", now); err == nil {
		t.Fatalf("expected signature error")
	}
}
