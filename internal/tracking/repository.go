package tracking

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Event is one entry in a booking's public tracking timeline, keyed by the
// human-facing tracking id rather than the database id.
type Event struct {
	ID         string    `json:"id"`
	TrackingID string    `json:"trackingId"`
	Status     string    `json:"status"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert appends a timeline entry. Callers run it inside the transaction that
// performs the state change so the timeline never records a write that rolled
// back.
func Insert(ctx context.Context, tx pgx.Tx, trackingID, status, details string) error {
	const q = `
INSERT INTO tracking_events (tracking_id, status, details)
VALUES ($1, $2, $3)
`
	_, err := tx.Exec(ctx, q, trackingID, status, details)
	return err
}

func (r *Repository) ListByTrackingID(ctx context.Context, trackingID string) ([]Event, error) {
	const q = `
SELECT id, tracking_id, status, COALESCE(details,''), created_at
FROM tracking_events
WHERE tracking_id = $1
ORDER BY created_at ASC
`
	rows, err := r.db.Query(ctx, q, trackingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.TrackingID, &e.Status, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
