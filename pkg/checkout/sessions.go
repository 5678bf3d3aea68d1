package checkout

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type LineItem struct {
	Currency        string
	UnitAmountMinor int64
	ProductName     string
	Quantity        int
}

type CreateSessionParams struct {
	LineItem      LineItem
	CustomerEmail string
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

// Session is the subset of the provider's checkout session object this
// backend consumes. Amounts are in the currency's minor unit.
type Session struct {
	ID               string
	URL              string
	PaymentIntentID  string
	PaymentStatus    string
	AmountTotalMinor int64
	Currency         string
	CustomerEmail    string
	Metadata         map[string]string
}

type sessionPayload struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	PaymentIntent   string            `json:"payment_intent"`
	PaymentStatus   string            `json:"payment_status"`
	AmountTotal     int64             `json:"amount_total"`
	Currency        string            `json:"currency"`
	Metadata        map[string]string `json:"metadata"`
	CustomerDetails struct {
		Email string `json:"email"`
	} `json:"customer_details"`
}

func (p sessionPayload) toSession() *Session {
	return &Session{
		ID:               p.ID,
		URL:              p.URL,
		PaymentIntentID:  p.PaymentIntent,
		PaymentStatus:    p.PaymentStatus,
		AmountTotalMinor: p.AmountTotal,
		Currency:         p.Currency,
		CustomerEmail:    p.CustomerDetails.Email,
		Metadata:         p.Metadata,
	}
}

func (c Client) CreateSession(ctx context.Context, p CreateSessionParams) (*Session, error) {
	if p.LineItem.UnitAmountMinor <= 0 {
		return nil, fmt.Errorf("line item amount must be > 0")
	}
	qty := p.LineItem.Quantity
	if qty <= 0 {
		qty = 1
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price_data][currency]", p.LineItem.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(p.LineItem.UnitAmountMinor, 10))
	form.Set("line_items[0][price_data][product_data][name]", p.LineItem.ProductName)
	form.Set("line_items[0][quantity]", strconv.Itoa(qty))
	if p.CustomerEmail != "" {
		form.Set("customer_email", p.CustomerEmail)
	}
	for k, v := range p.Metadata {
		form.Set("metadata["+k+"]", v)
	}
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)

	var payload sessionPayload
	if _, err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form, &payload); err != nil {
		return nil, err
	}
	if payload.ID == "" || payload.URL == "" {
		return nil, fmt.Errorf("checkout session create returned empty id or url")
	}
	return payload.toSession(), nil
}

func (c Client) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("missing session id")
	}

	var payload sessionPayload
	if _, err := c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil, &payload); err != nil {
		return nil, err
	}
	if payload.ID == "" {
		return nil, fmt.Errorf("checkout session retrieve returned empty id")
	}
	return payload.toSession(), nil
}
