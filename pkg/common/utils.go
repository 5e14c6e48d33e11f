package common

import (
	"fmt"
	"strconv"
	"time"
)

// GenerateOrderID builds a gateway order id from a contest id: a short
// contest prefix plus the last 8 digits of the current unix-millis clock.
// The full value is what must be unique, which the store enforces.
func GenerateOrderID(contestID string) string {
	prefix := contestID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return fmt.Sprintf("CONTEST-%s-%s", prefix, millis)
}

// ParseInt parses a query-string integer, falling back when absent or junk.
func ParseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// GeneratePayoutRef builds a disbursement reference for a payout row.
func GeneratePayoutRef(payoutID string) string {
	prefix := payoutID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return fmt.Sprintf("PAYOUT-%s-%s", prefix, millis)
}
