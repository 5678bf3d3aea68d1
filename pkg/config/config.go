package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// Hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often PgBouncer/pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	DB DBConfig

	Checkout CheckoutConfig

	Auth AuthConfig

	// AllowedOrigins is a comma-separated allowlist of browser origins allowed
	// to call the API. Example:
	//   https://homedecor.example.com,http://localhost:5173
	AllowedOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type CheckoutConfig struct {
	// SecretKey authenticates against the hosted checkout provider's API.
	SecretKey string

	// Currency for checkout line items (the storefront prices in BDT).
	Currency string

	// SiteDomain is the frontend base URL the provider redirects back to
	// after checkout. Example: https://homedecor.example.com
	SiteDomain string
}

type AuthConfig struct {
	// JWTSecret verifies identity tokens issued for the frontend (HS256).
	JWTSecret string
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "homedecor"),
			User:     env("DB_USER", "homedecor"),
			Password: env("DB_PASSWORD", "homedecor"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Checkout: CheckoutConfig{
			SecretKey:  os.Getenv("CHECKOUT_SECRET_KEY"),
			Currency:   env("CHECKOUT_CURRENCY", "BDT"),
			SiteDomain: os.Getenv("SITE_DOMAIN"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		},

		AllowedOrigins: envList("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
