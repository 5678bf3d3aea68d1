package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"homedecor/internal/decoration"
	"homedecor/internal/tracking"
	"homedecor/pkg/checkout"
	"homedecor/pkg/db"
)

// SessionRetriever resolves a checkout session reference to the provider's
// view of it. Satisfied by checkout.Client.
type SessionRetriever interface {
	RetrieveSession(ctx context.Context, sessionID string) (*checkout.Session, error)
}

// PaymentLookup resolves a provider transaction id to a stored payment.
// Satisfied by *Repository.
type PaymentLookup interface {
	FindByTransactionID(ctx context.Context, transactionID string) (*Payment, error)
}

type ReconcileResult struct {
	Success       bool   `json:"success"`
	AlreadyExists bool   `json:"alreadyExists,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
	TrackingID    string `json:"trackingId,omitempty"`
}

// Reconciler turns a provider session reference into at most one payment
// record and, on first success, advances the booking lifecycle.
type Reconciler struct {
	DB       *pgxpool.Pool
	Sessions SessionRetriever
	Payments PaymentLookup
}

var errAlreadyReconciled = errors.New("transaction already reconciled")

// Reconcile is safe to call any number of times for the same session: the
// customer reloading the success page or the provider redirecting twice must
// not duplicate a payment. The fast path answers repeats without writes; the
// UNIQUE constraint on transaction_id closes the window where two
// reconciliations race past the lookup, turning the loser's insert into the
// duplicate signal.
func (rc Reconciler) Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	s, err := rc.Sessions.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("retrieve session: %w", err)
	}
	if s.PaymentIntentID == "" {
		return nil, fmt.Errorf("session %s carries no transaction id", sessionID)
	}

	if existing, err := rc.Payments.FindByTransactionID(ctx, s.PaymentIntentID); err == nil {
		return &ReconcileResult{
			AlreadyExists: true,
			TransactionID: existing.TransactionID,
			TrackingID:    existing.TrackingID,
		}, nil
	}

	if s.PaymentStatus != "paid" {
		return &ReconcileResult{Success: false}, nil
	}

	decorationID := s.Metadata["decorationId"]
	if decorationID == "" {
		return nil, fmt.Errorf("session %s carries no decorationId metadata", sessionID)
	}

	trackingID := GenerateTrackingID()

	err = db.WithTx(ctx, rc.DB, func(tx pgx.Tx) error {
		// Insert first: the constraint on transaction_id decides the race
		// before the booking is touched.
		if err := Insert(ctx, tx, InsertInput{
			DecorationID:   decorationID,
			DecorationName: s.Metadata["decorationName"],
			TransactionID:  s.PaymentIntentID,
			Amount:         AmountFromMinorUnits(s.AmountTotalMinor),
			Currency:       s.Currency,
			CustomerEmail:  s.CustomerEmail,
			PaymentStatus:  s.PaymentStatus,
			TrackingID:     trackingID,
			PaidAt:         time.Now(),
		}); err != nil {
			if isUniqueViolation(err) {
				return errAlreadyReconciled
			}
			return err
		}

		if err := decoration.MarkPaid(ctx, tx, decorationID, trackingID); err != nil {
			return err
		}

		return tracking.Insert(ctx, tx, trackingID, string(decoration.StatusAssignedDecorator), "Payment confirmed")
	})
	if errors.Is(err, errAlreadyReconciled) {
		existing, ferr := rc.Payments.FindByTransactionID(ctx, s.PaymentIntentID)
		if ferr != nil {
			return nil, ferr
		}
		return &ReconcileResult{
			AlreadyExists: true,
			TransactionID: existing.TransactionID,
			TrackingID:    existing.TrackingID,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &ReconcileResult{
		Success:       true,
		TransactionID: s.PaymentIntentID,
		TrackingID:    trackingID,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if ok := errors.As(err, &pgErr); ok {
		return pgErr.Code == "23505"
	}
	return false
}
