package decorator

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

const (
	WorkAvailable   = "available"
	WorkInDelivery  = "in_delivery"
	WorkUnavailable = "unavailable"
)

type Decorator struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email"`
	Status     string `json:"status"`
	WorkStatus string `json:"workStatus,omitempty"`
	// Image comes from the linked user account, joined by email.
	Image     string    `json:"decoratorImage,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, name, email string) (*Decorator, error) {
	const q = `
INSERT INTO decorators (name, email, status)
VALUES ($1, $2, 'pending')
RETURNING id, COALESCE(name,''), email, status, COALESCE(work_status,''), created_at
`
	d := &Decorator{}
	if err := r.db.QueryRow(ctx, q, name, email).Scan(
		&d.ID, &d.Name, &d.Email, &d.Status, &d.WorkStatus, &d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return d, nil
}

type ListFilter struct {
	Status     string
	WorkStatus string
}

// List joins the user account by email so the frontend gets the decorator's
// profile image without a second request.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]Decorator, error) {
	q := `
SELECT d.id, COALESCE(d.name,''), d.email, d.status, COALESCE(d.work_status,''),
       COALESCE(u.photo_url,''), d.created_at
FROM decorators d
LEFT JOIN users u ON u.email = d.email
WHERE 1=1`
	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		q += ` AND d.status = $1`
	}
	if f.WorkStatus != "" {
		args = append(args, f.WorkStatus)
		if len(args) == 1 {
			q += ` AND d.work_status = $1`
		} else {
			q += ` AND d.work_status = $2`
		}
	}
	q += ` ORDER BY d.created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Decorator
	for rows.Next() {
		var d Decorator
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Status, &d.WorkStatus, &d.Image, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Decorator, error) {
	const q = `
SELECT id, COALESCE(name,''), email, status, COALESCE(work_status,''), created_at
FROM decorators
WHERE id = $1
FOR UPDATE
`
	d := &Decorator{}
	if err := tx.QueryRow(ctx, q, id).Scan(
		&d.ID, &d.Name, &d.Email, &d.Status, &d.WorkStatus, &d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return d, nil
}

// SetStatus applies the admin decision. Approval also seeds work_status so an
// approved decorator is immediately assignable; a decline leaves it untouched.
func SetStatus(ctx context.Context, tx pgx.Tx, id, status string) error {
	const q = `
UPDATE decorators
SET status = $2,
    work_status = CASE WHEN $2 = 'approved' THEN 'available' ELSE work_status END
WHERE id = $1
`
	_, err := tx.Exec(ctx, q, id, status)
	return err
}

func SetWorkStatus(ctx context.Context, tx pgx.Tx, id, workStatus string) error {
	const q = `UPDATE decorators SET work_status = $2 WHERE id = $1`
	_, err := tx.Exec(ctx, q, id, workStatus)
	return err
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM decorators WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
