package dataloader

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a statement amount using a decimal comma ("-23,50")
// into an exact decimal. Empty or malformed input yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	s = strings.Replace(s, ",", ".", 1)
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
