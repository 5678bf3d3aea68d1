package payment

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

const trackingPrefix = "PRCL"

// GenerateTrackingID issues the human-facing reference code stamped on a
// booking once payment is confirmed: PRCL-YYYYMMDD-XXXXXX with the current
// UTC date and six upper-hex characters from three random bytes. It is a
// reference code, not a database key; same-day collisions are possible
// (~1 in 16M) and accepted.
func GenerateTrackingID() string {
	return generateTrackingID(time.Now())
}

func generateTrackingID(now time.Time) string {
	var b [3]byte
	_, _ = rand.Read(b[:])
	return trackingPrefix + "-" + now.UTC().Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(b[:]))
}
