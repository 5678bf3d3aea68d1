package payment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Payment struct {
	ID             string    `json:"id"`
	DecorationID   string    `json:"decorationId"`
	DecorationName string    `json:"decorationName,omitempty"`
	TransactionID  string    `json:"transactionId"`
	Amount         string    `json:"amount"`
	Currency       string    `json:"currency"`
	CustomerEmail  string    `json:"customerEmail"`
	PaymentStatus  string    `json:"paymentStatus"`
	TrackingID     string    `json:"trackingId"`
	PaidAt         time.Time `json:"paidAt"`
	// WorkStatus is the linked decoration's current decoration status, joined
	// in at list time. The historical field name is kept for the frontend even
	// though it holds a decoration status, not a decorator work status.
	WorkStatus string `json:"workStatus,omitempty"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByTransactionID(ctx context.Context, transactionID string) (*Payment, error) {
	const q = `
SELECT id, decoration_id::text, COALESCE(decoration_name,''), transaction_id, amount::text,
       currency, customer_email, payment_status, tracking_id, paid_at
FROM payments
WHERE transaction_id = $1
`
	p := &Payment{}
	if err := r.db.QueryRow(ctx, q, transactionID).Scan(
		&p.ID, &p.DecorationID, &p.DecorationName, &p.TransactionID, &p.Amount,
		&p.Currency, &p.CustomerEmail, &p.PaymentStatus, &p.TrackingID, &p.PaidAt,
	); err != nil {
		return nil, err
	}
	return p, nil
}

type InsertInput struct {
	DecorationID   string
	DecorationName string
	TransactionID  string
	Amount         decimal.Decimal
	Currency       string
	CustomerEmail  string
	PaymentStatus  string
	TrackingID     string
	PaidAt         time.Time
}

// Insert materializes a reconciled payment. The UNIQUE constraint on
// transaction_id is the idempotency guard; callers must treat a unique
// violation as "already reconciled", not as a failure.
func Insert(ctx context.Context, tx pgx.Tx, in InsertInput) error {
	const q = `
INSERT INTO payments (decoration_id, decoration_name, transaction_id, amount, currency, customer_email, payment_status, tracking_id, paid_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := tx.Exec(ctx, q,
		in.DecorationID, in.DecorationName, in.TransactionID, in.Amount.StringFixed(2),
		in.Currency, in.CustomerEmail, in.PaymentStatus, in.TrackingID, in.PaidAt,
	)
	return err
}

// ListByCustomer returns payments newest-first with the linked decoration's
// current status joined in. The join is a LEFT JOIN because bookings can be
// deleted while their payment history remains.
func (r *Repository) ListByCustomer(ctx context.Context, customerEmail string) ([]Payment, error) {
	q := `
SELECT p.id, p.decoration_id::text, COALESCE(p.decoration_name,''), p.transaction_id, p.amount::text,
       p.currency, p.customer_email, p.payment_status, p.tracking_id, p.paid_at,
       COALESCE(d.decoration_status, '')
FROM payments p
LEFT JOIN decorations d ON d.id = p.decoration_id
`
	args := []any{}
	if customerEmail != "" {
		q += ` WHERE p.customer_email = $1`
		args = append(args, customerEmail)
	}
	q += ` ORDER BY p.paid_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(
			&p.ID, &p.DecorationID, &p.DecorationName, &p.TransactionID, &p.Amount,
			&p.Currency, &p.CustomerEmail, &p.PaymentStatus, &p.TrackingID, &p.PaidAt,
			&p.WorkStatus,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
