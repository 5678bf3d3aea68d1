package decoration

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"

	"homedecor/internal/api"
)

func TestWriteLookupError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType string
	}{
		{"missing row", pgx.ErrNoRows, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped missing row", fmt.Errorf("get decoration: %w", pgx.ErrNoRows), http.StatusNotFound, "NOT_FOUND"},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeLookupError(w, tc.err)

			if w.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, w.Code)
			}
			var env api.ErrorEnvelope
			if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if env.Error.Code != tc.wantType {
				t.Fatalf("expected error code %s, got %s", tc.wantType, env.Error.Code)
			}
		})
	}
}
