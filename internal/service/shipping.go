package service

import "github.com/shopspring/decimal"

// Shipping is a flat fee waived once the subtotal crosses the free-shipping
// threshold. Lead time is fixed: no carrier integration.
var (
	freeShippingThreshold = decimal.NewFromInt(100)
	flatShippingFee       = decimal.RequireFromString("10.00")
	taxRate               = decimal.RequireFromString("0.10")
)

const EstimatedDeliveryDays = 5

func ShippingCost(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		return decimal.Zero
	}
	return flatShippingFee
}

func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate)
}
