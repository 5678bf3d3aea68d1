package payment

import (
	"regexp"
	"testing"
	"time"
)

var trackingRe = regexp.MustCompile(`^PRCL-\d{8}-[0-9A-F]{6}$`)

func TestGenerateTrackingID_Format(t *testing.T) {
	id := GenerateTrackingID()
	if !trackingRe.MatchString(id) {
		t.Fatalf("unexpected tracking id format: %q", id)
	}
}

func TestGenerateTrackingID_UsesUTCDate(t *testing.T) {
	// 23:30 in UTC+6 is already the next day locally; the code must carry the
	// UTC date.
	loc := time.FixedZone("UTC+6", 6*60*60)
	now := time.Date(2026, 3, 2, 1, 30, 0, 0, loc) // 2026-03-01 19:30 UTC

	id := generateTrackingID(now)
	if want := "PRCL-20260301-"; id[:len(want)] != want {
		t.Fatalf("expected prefix %q, got %q", want, id)
	}
}

func TestGenerateTrackingID_Varies(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		seen[GenerateTrackingID()] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected random suffixes, got %d distinct ids", len(seen))
	}
}
