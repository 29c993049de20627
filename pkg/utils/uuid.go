package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a random UUID string for products, lines and transactions.
func NewID() string {
	return uuid.NewString()
}

// GenerateReceiptNo builds a receipt number such as TRX-20260315-1A2B3C4D.
// The date part is taken from at in its own location.
func GenerateReceiptNo(at time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "TRX-" + at.Format("20060102") + "-" + strings.ToUpper(suffix)
}
