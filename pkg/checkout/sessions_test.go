package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "bdt", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "150000", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "Please pay for: Wedding Stage", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))
		assert.Equal(t, "customer@example.com", r.PostForm.Get("customer_email"))
		assert.Equal(t, "deco-1", r.PostForm.Get("metadata[decorationId]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://pay.example/cs_test_1","payment_status":"unpaid"}`))
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SecretKey: "sk_test_123"}
	s, err := c.CreateSession(context.Background(), CreateSessionParams{
		LineItem: LineItem{
			Currency:        "bdt",
			UnitAmountMinor: 150000,
			ProductName:     "Please pay for: Wedding Stage",
			Quantity:        1,
		},
		CustomerEmail: "customer@example.com",
		Metadata:      map[string]string{"decorationId": "deco-1"},
		SuccessURL:    "https://site.example/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     "https://site.example/payment-cancelled",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", s.ID)
	assert.Equal(t, "https://pay.example/cs_test_1", s.URL)
}

func TestRetrieveSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/checkout/sessions/cs_test_2", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "cs_test_2",
			"payment_intent": "pi_123",
			"payment_status": "paid",
			"amount_total": 150000,
			"currency": "bdt",
			"customer_details": {"email": "customer@example.com"},
			"metadata": {"decorationId": "deco-1", "decorationName": "Wedding Stage"}
		}`))
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SecretKey: "sk_test_123"}
	s, err := c.RetrieveSession(context.Background(), "cs_test_2")
	require.NoError(t, err)
	assert.Equal(t, "pi_123", s.PaymentIntentID)
	assert.Equal(t, "paid", s.PaymentStatus)
	assert.Equal(t, int64(150000), s.AmountTotalMinor)
	assert.Equal(t, "deco-1", s.Metadata["decorationId"])
	assert.Equal(t, "customer@example.com", s.CustomerEmail)
}

func TestDo_SurfacesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"expired key"}}`))
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SecretKey: "sk_test_123"}
	_, err := c.RetrieveSession(context.Background(), "cs_x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=402")
	assert.Contains(t, err.Error(), "expired key")
}
