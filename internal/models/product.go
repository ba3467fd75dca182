package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSearchFilter holds search criteria for product queries
type ProductSearchFilter struct {
	Query     string           `json:"query,omitempty"`      // Match against name and description
	MinPrice  *decimal.Decimal `json:"min_price,omitempty"`  // Minimum unit price
	MaxPrice  *decimal.Decimal `json:"max_price,omitempty"`  // Maximum unit price
	MinStock  *int             `json:"min_stock,omitempty"`  // Minimum stock on hand
	MaxStock  *int             `json:"max_stock,omitempty"`  // Maximum stock on hand
	SortBy    string           `json:"sort_by,omitempty"`    // Sort field: name, created_at, stock, unit_price
	SortOrder string           `json:"sort_order,omitempty"` // Sort order: asc, desc
	Limit     int              `json:"limit,omitempty"`
	Offset    int              `json:"offset,omitempty"`
}

type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description *string         `json:"description" db:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	Stock       int             `json:"stock" db:"stock"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
