package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"homedecor/pkg/checkout"
)

type stubSessions struct {
	session *checkout.Session
	err     error
}

func (s stubSessions) RetrieveSession(ctx context.Context, sessionID string) (*checkout.Session, error) {
	return s.session, s.err
}

type stubPayments struct {
	byTransaction map[string]*Payment
}

func (s stubPayments) FindByTransactionID(ctx context.Context, transactionID string) (*Payment, error) {
	p, ok := s.byTransaction[transactionID]
	if !ok {
		return nil, errors.New("no rows")
	}
	return p, nil
}

func TestReconcile_RetrieveFailurePropagates(t *testing.T) {
	rc := Reconciler{Sessions: stubSessions{err: errors.New("provider down")}}

	_, err := rc.Reconcile(context.Background(), "cs_1")
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestReconcile_RejectsSessionWithoutTransactionID(t *testing.T) {
	rc := Reconciler{Sessions: stubSessions{session: &checkout.Session{
		ID:            "cs_2",
		PaymentStatus: "paid",
	}}}

	_, err := rc.Reconcile(context.Background(), "cs_2")
	if err == nil {
		t.Fatalf("expected error for session without payment intent")
	}
}

// A repeated confirmation for an already-recorded transaction answers from
// the stored payment without touching the database: the nil pool would panic
// on any write attempt.
func TestReconcile_RepeatReturnsExistingPayment(t *testing.T) {
	rc := Reconciler{
		Sessions: stubSessions{session: &checkout.Session{
			ID:              "cs_3",
			PaymentIntentID: "pi_1",
			PaymentStatus:   "paid",
			Metadata:        map[string]string{"decorationId": "d-1"},
		}},
		Payments: stubPayments{byTransaction: map[string]*Payment{
			"pi_1": {TransactionID: "pi_1", TrackingID: "PRCL-20260829-AB12CD"},
		}},
	}

	res, err := rc.Reconcile(context.Background(), "cs_3")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !res.AlreadyExists {
		t.Fatalf("expected alreadyExists result")
	}
	if res.TransactionID != "pi_1" || res.TrackingID != "PRCL-20260829-AB12CD" {
		t.Fatalf("expected the stored transaction and tracking ids, got %+v", res)
	}

	// A second confirmation must answer identically.
	again, err := rc.Reconcile(context.Background(), "cs_3")
	if err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if !again.AlreadyExists || again.TrackingID != res.TrackingID {
		t.Fatalf("expected identical repeat result, got %+v", again)
	}
}

func TestReconcile_UnpaidSessionWritesNothing(t *testing.T) {
	rc := Reconciler{
		Sessions: stubSessions{session: &checkout.Session{
			ID:              "cs_4",
			PaymentIntentID: "pi_2",
			PaymentStatus:   "unpaid",
			Metadata:        map[string]string{"decorationId": "d-2"},
		}},
		Payments: stubPayments{},
	}

	res, err := rc.Reconcile(context.Background(), "cs_4")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if res.Success || res.AlreadyExists {
		t.Fatalf("expected plain unsuccessful result, got %+v", res)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	if !isUniqueViolation(dup) {
		t.Fatalf("expected 23505 to be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert payment: %w", dup)) {
		t.Fatalf("expected wrapped 23505 to be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation is not the duplicate signal")
	}
	if isUniqueViolation(errors.New("plain")) {
		t.Fatalf("plain error is not a unique violation")
	}
}
