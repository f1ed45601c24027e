package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Flat promo table: no expiry, no usage limits, no stacking.
var promoCodes = map[string]decimal.Decimal{
	"SAVE10":   decimal.RequireFromString("10.00"),
	"SAVE20":   decimal.RequireFromString("20.00"),
	"FREESHIP": decimal.RequireFromString("10.00"),
}

// EvaluatePromoCode looks the code up case-insensitively. Unknown codes are
// invalid with a zero discount.
func EvaluatePromoCode(code string) (decimal.Decimal, bool) {
	discount, ok := promoCodes[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return decimal.Zero, false
	}
	return discount, true
}
