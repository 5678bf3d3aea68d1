// Package checkout is a minimal client for the hosted checkout provider's
// sessions API. Only the two calls this backend needs are implemented:
// creating a session (to get a redirect URL) and retrieving one (to confirm
// payment after the provider redirects back).
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.stripe.com"

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	SecretKey  string
}

func (c Client) do(ctx context.Context, method, path string, form url.Values, out any) (int, error) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 20 * time.Second}
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.SecretKey == "" {
		return 0, fmt.Errorf("missing checkout secret key")
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		// The provider dedupes retried POSTs by this key.
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	b, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return resp.StatusCode, readErr
	}

	// Surface the provider error body for non-2xx, so callers can see
	// declined keys, bad params, etc.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(b) > 0 {
			return resp.StatusCode, fmt.Errorf("checkout api error: status=%d body=%s", resp.StatusCode, string(b))
		}
		return resp.StatusCode, fmt.Errorf("checkout api error: status=%d", resp.StatusCode)
	}

	if out != nil && len(b) > 0 {
		if err := json.Unmarshal(b, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode checkout response failed: %w body=%s", err, string(b))
		}
	}

	return resp.StatusCode, nil
}
