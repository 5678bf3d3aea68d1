package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	RoleUser      = "user"
	RoleDecorator = "decorator"
	RoleAdmin     = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleDecorator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create registers a user with the default role. Registering an email that
// already exists is a no-op returning the stored record and created=false;
// email storage is case-sensitive, so the conflict target is the exact email.
func (r *Repository) Create(ctx context.Context, email, name, photoURL string) (*User, bool, error) {
	const q = `
INSERT INTO users (email, name, photo_url, role)
VALUES ($1, $2, $3, 'user')
ON CONFLICT (email) DO NOTHING
RETURNING id, email, COALESCE(name,''), COALESCE(photo_url,''), role, created_at
`
	u := &User{}
	err := r.db.QueryRow(ctx, q, email, name, photoURL).Scan(
		&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.CreatedAt,
	)
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	existing, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
SELECT id, email, COALESCE(name,''), COALESCE(photo_url,''), role, created_at
FROM users
WHERE email = $1
`
	u := &User{}
	if err := r.db.QueryRow(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

// RoleByEmail satisfies the access-guard lookup. Absence of a record is an
// error so guards treat unknown callers as forbidden.
func (r *Repository) RoleByEmail(ctx context.Context, email string) (string, error) {
	const q = `SELECT role FROM users WHERE email = $1`
	var role string
	if err := r.db.QueryRow(ctx, q, email).Scan(&role); err != nil {
		return "", err
	}
	return role, nil
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	const q = `
SELECT id, email, COALESCE(name,''), COALESCE(photo_url,''), role, created_at
FROM users
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateRole(ctx context.Context, id, role string) error {
	const q = `UPDATE users SET role = $2 WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// GrantDecoratorRole flips the role for the user matching email. The match is
// case-insensitive because the decorator application email and the auth
// account email can differ in casing. Returns the number of rows changed so
// the caller can tell a non-matching email cascaded nothing.
func GrantDecoratorRole(ctx context.Context, tx pgx.Tx, email string) (int64, error) {
	const q = `UPDATE users SET role = 'decorator' WHERE LOWER(email) = LOWER($1)`
	tag, err := tx.Exec(ctx, q, email)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
