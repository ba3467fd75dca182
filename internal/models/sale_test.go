package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	sale := &Sale{
		LineItems: []*SaleLineItem{
			{Quantity: 3, UnitPrice: decimal.RequireFromString("25.50")},
			{Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
		},
	}

	sale.ComputeTotals()

	assert.True(t, sale.LineItems[0].Subtotal.Equal(decimal.RequireFromString("76.50")))
	assert.True(t, sale.LineItems[1].Subtotal.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("86.50")))
}

func TestComputeTotals_NoLineItems(t *testing.T) {
	sale := &Sale{}
	sale.ComputeTotals()
	assert.True(t, sale.Total.IsZero())
}
