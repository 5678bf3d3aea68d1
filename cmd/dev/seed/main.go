// seed loads a local database with demo data: an admin, a customer, an
// approved decorator, and a few bookings in various lifecycle states.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"homedecor/internal/decoration"
	"homedecor/internal/decorator"
	"homedecor/internal/user"
	"homedecor/pkg/config"
	"homedecor/pkg/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	users := user.NewRepository(pool)
	decorations := decoration.NewRepository(pool)
	decorators := decorator.NewRepository(pool)

	adminEmail := env("SEED_ADMIN_EMAIL", "admin@example.com")

	if _, _, err := users.Create(ctx, adminEmail, "Demo Admin", ""); err != nil {
		fail("create admin user", err)
	}
	if err := setRole(ctx, pool, adminEmail, "admin"); err != nil {
		fail("grant admin role", err)
	}

	if _, _, err := users.Create(ctx, "customer@example.com", "Demo Customer", ""); err != nil {
		fail("create customer user", err)
	}

	if _, _, err := users.Create(ctx, "decorator@example.com", "Demo Decorator", ""); err != nil {
		fail("create decorator user", err)
	}
	d, err := decorators.Create(ctx, "Demo Decorator", "decorator@example.com")
	if err != nil {
		fail("create decorator", err)
	}
	if err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		if err := decorator.SetStatus(ctx, tx, d.ID, decorator.StatusApproved); err != nil {
			return err
		}
		_, err := user.GrantDecoratorRole(ctx, tx, d.Email)
		return err
	}); err != nil {
		fail("approve decorator", err)
	}

	for _, in := range []decoration.CreateInput{
		{ServiceName: "Wedding Stage", Cost: decimal.RequireFromString("1500.00"), AdminEmail: adminEmail, CustomerEmail: "customer@example.com"},
		{ServiceName: "Birthday Balloons", Cost: decimal.RequireFromString("250.00"), AdminEmail: adminEmail, CustomerEmail: "customer@example.com"},
		{ServiceName: "Office Opening", Cost: decimal.RequireFromString("900.00"), AdminEmail: adminEmail},
	} {
		if _, err := decorations.Insert(ctx, in); err != nil {
			fail("insert decoration", err)
		}
	}

	fmt.Println("seeded demo data")
}

func setRole(ctx context.Context, pool *pgxpool.Pool, email, role string) error {
	_, err := pool.Exec(ctx, `UPDATE users SET role = $2 WHERE email = $1`, email, role)
	return err
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}
