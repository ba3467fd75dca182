package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleSearchFilter holds filter criteria for sale list queries
type SaleSearchFilter struct {
	CustomerID    *uuid.UUID `json:"customer_id,omitempty"`
	PointOfSaleID *uuid.UUID `json:"point_of_sale_id,omitempty"`
	SoldFrom      *time.Time `json:"sold_from,omitempty"`
	SoldTo        *time.Time `json:"sold_to,omitempty"`
	Limit         int        `json:"limit,omitempty"`
	Offset        int        `json:"offset,omitempty"`
}

// SaleItemRequest is one requested line of a sale. UnitPrice overrides the
// product's current price when set; otherwise the current price is captured.
type SaleItemRequest struct {
	ProductID uuid.UUID        `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// SaleRequest is the input of the sale transaction.
type SaleRequest struct {
	CustomerID    uuid.UUID         `json:"customer_id"`
	PointOfSaleID uuid.UUID         `json:"point_of_sale_id"`
	Items         []SaleItemRequest `json:"items"`
}

type Sale struct {
	ID            uuid.UUID `json:"id" db:"id"`
	CustomerID    uuid.UUID `json:"customer_id" db:"customer_id"`
	PointOfSaleID uuid.UUID `json:"point_of_sale_id" db:"point_of_sale_id"`
	SoldAt        time.Time `json:"sold_at" db:"sold_at"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	// Read-side enrichment, populated by joins.
	CustomerName  string `json:"customer_name,omitempty" db:"-"`
	CustomerEmail string `json:"customer_email,omitempty" db:"-"`
	PointOfSale   string `json:"point_of_sale,omitempty" db:"-"`
	Location      string `json:"location,omitempty" db:"-"`

	LineItems []*SaleLineItem `json:"line_items,omitempty" db:"-"`
	Total     decimal.Decimal `json:"total" db:"-"`
}

type SaleLineItem struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	SaleID    uuid.UUID       `json:"sale_id" db:"sale_id"`
	ProductID uuid.UUID       `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`

	ProductName string          `json:"product_name,omitempty" db:"-"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"-"`
}

// ComputeTotals fills Subtotal on every line and Total on the sale.
func (s *Sale) ComputeTotals() {
	total := decimal.Zero
	for _, li := range s.LineItems {
		li.Subtotal = li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
		total = total.Add(li.Subtotal)
	}
	s.Total = total
}

// CustomerSaleSummary is the flattened per-customer sale view exposed by the
// summary endpoint.
type CustomerSaleSummary struct {
	SaleID        uuid.UUID `json:"sale_id"`
	SoldAt        time.Time `json:"sold_at"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	PointOfSale   string    `json:"point_of_sale"`
	Location      string    `json:"location"`
}
