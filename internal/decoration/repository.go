package decoration

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Decoration struct {
	ID               string    `json:"id"`
	ServiceName      string    `json:"serviceName"`
	Cost             string    `json:"cost"`
	AdminEmail       string    `json:"adminEmail"`
	CustomerEmail    string    `json:"customerEmail,omitempty"`
	DecorationStatus Status    `json:"decorationStatus"`
	PaymentStatus    string    `json:"paymentStatus"`
	DecoratorID      string    `json:"decoratorId,omitempty"`
	DecoratorName    string    `json:"decoratorName,omitempty"`
	DecoratorEmail   string    `json:"decoratorEmail,omitempty"`
	TrackingID       string    `json:"trackingId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

const decorationColumns = `
id, service_name, cost::text, admin_email, COALESCE(customer_email,''),
decoration_status, payment_status,
COALESCE(decorator_id::text,''), COALESCE(decorator_name,''), COALESCE(decorator_email,''),
COALESCE(tracking_id,''), created_at, updated_at`

func scanDecoration(row pgx.Row) (*Decoration, error) {
	var d Decoration
	if err := row.Scan(
		&d.ID, &d.ServiceName, &d.Cost, &d.AdminEmail, &d.CustomerEmail,
		&d.DecorationStatus, &d.PaymentStatus,
		&d.DecoratorID, &d.DecoratorName, &d.DecoratorEmail,
		&d.TrackingID, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

type CreateInput struct {
	ServiceName   string
	Cost          decimal.Decimal
	AdminEmail    string
	CustomerEmail string
}

func (r *Repository) Insert(ctx context.Context, in CreateInput) (*Decoration, error) {
	const q = `
INSERT INTO decorations (service_name, cost, admin_email, customer_email, decoration_status, payment_status)
VALUES ($1, $2, $3, $4, 'pending', 'unpaid')
RETURNING ` + decorationColumns
	return scanDecoration(r.db.QueryRow(ctx, q, in.ServiceName, in.Cost.StringFixed(2), in.AdminEmail, in.CustomerEmail))
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Decoration, error) {
	const q = `SELECT ` + decorationColumns + ` FROM decorations WHERE id = $1`
	return scanDecoration(r.db.QueryRow(ctx, q, id))
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Decoration, error) {
	const q = `SELECT ` + decorationColumns + ` FROM decorations WHERE id = $1 FOR UPDATE`
	return scanDecoration(tx.QueryRow(ctx, q, id))
}

type ListFilter struct {
	AdminEmail string
	Status     string
}

// List returns bookings newest-first, optionally narrowed by owning admin
// and/or exact decoration status.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]Decoration, error) {
	q := `SELECT ` + decorationColumns + ` FROM decorations WHERE 1=1`
	args := []any{}
	if f.AdminEmail != "" {
		args = append(args, f.AdminEmail)
		q += ` AND admin_email = $` + itoa(len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		q += ` AND decoration_status = $` + itoa(len(args))
	}
	q += ` ORDER BY created_at DESC`

	return r.queryMany(ctx, q, args...)
}

type DecoratorListFilter struct {
	DecoratorEmail string
	WorkStatus     string
}

// ListByDecorator powers the decorator dashboard. See WorkStatusCondition for
// the filter semantics.
func (r *Repository) ListByDecorator(ctx context.Context, f DecoratorListFilter) ([]Decoration, error) {
	q := `SELECT ` + decorationColumns + ` FROM decorations WHERE 1=1`
	args := []any{}
	if f.DecoratorEmail != "" {
		args = append(args, f.DecoratorEmail)
		q += ` AND decorator_email = $` + itoa(len(args))
	}
	if cond := ParseWorkStatusFilter(f.WorkStatus); !cond.IsZero() {
		if cond.ExcludeSetupCompleted {
			q += ` AND decoration_status <> 'setup_completed'`
		} else {
			args = append(args, cond.Exact)
			q += ` AND decoration_status = $` + itoa(len(args))
		}
	}
	q += ` ORDER BY created_at DESC`

	return r.queryMany(ctx, q, args...)
}

func (r *Repository) queryMany(ctx context.Context, q string, args ...any) ([]Decoration, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Decoration
	for rows.Next() {
		var d Decoration
		if err := rows.Scan(
			&d.ID, &d.ServiceName, &d.Cost, &d.AdminEmail, &d.CustomerEmail,
			&d.DecorationStatus, &d.PaymentStatus,
			&d.DecoratorID, &d.DecoratorName, &d.DecoratorEmail,
			&d.TrackingID, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func AssignDecorator(ctx context.Context, tx pgx.Tx, id, decoratorID, decoratorName, decoratorEmail string) error {
	const q = `
UPDATE decorations
SET decoration_status = 'materials_prepared',
    decorator_id = $2,
    decorator_name = $3,
    decorator_email = $4,
    updated_at = NOW()
WHERE id = $1
`
	_, err := tx.Exec(ctx, q, id, decoratorID, decoratorName, decoratorEmail)
	return err
}

func UpdateStatus(ctx context.Context, tx pgx.Tx, id string, next Status) error {
	const q = `
UPDATE decorations
SET decoration_status = $2, updated_at = NOW()
WHERE id = $1
`
	_, err := tx.Exec(ctx, q, id, string(next))
	return err
}

// MarkPaid applies the payment-reconciliation side of the lifecycle: the
// booking becomes paid, advances to assigned-decorator, and receives its
// tracking id.
func MarkPaid(ctx context.Context, tx pgx.Tx, id, trackingID string) error {
	const q = `
UPDATE decorations
SET payment_status = 'paid',
    decoration_status = 'assigned-decorator',
    tracking_id = $2,
    updated_at = NOW()
WHERE id = $1
`
	_, err := tx.Exec(ctx, q, id, trackingID)
	return err
}

// Delete removes a booking in any status. It does not touch the assigned
// decorator's work status, matching the existing product behavior; a lingering
// in_delivery decorator must be reset through the status endpoints.
func (r *Repository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM decorations WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func itoa(n int) string { return strconv.Itoa(n) }
