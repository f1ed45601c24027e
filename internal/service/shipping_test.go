package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShippingCost_FlatFeeBelowThreshold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10.00", ShippingCost(decimal.RequireFromString("50.00")).StringFixed(2))
	assert.Equal(t, "10.00", ShippingCost(decimal.RequireFromString("99.99")).StringFixed(2))
	assert.Equal(t, "10.00", ShippingCost(decimal.Zero).StringFixed(2))
}

func TestShippingCost_FreeAtThreshold(t *testing.T) {
	t.Parallel()

	assert.True(t, ShippingCost(decimal.RequireFromString("100.00")).IsZero())
	assert.True(t, ShippingCost(decimal.RequireFromString("250.00")).IsZero())
}

func TestTax_TenPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10.00", Tax(decimal.RequireFromString("100.00")).StringFixed(2))
	assert.Equal(t, "4.50", Tax(decimal.RequireFromString("45.00")).StringFixed(2))
	assert.True(t, Tax(decimal.Zero).IsZero())
}
