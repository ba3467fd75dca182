package models

import (
	"time"

	"github.com/google/uuid"
)

type PointOfSale struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	LocationID uuid.UUID `json:"location_id" db:"location_id"`
	// LocationName is populated on reads that join locations; it is never
	// written back.
	LocationName string    `json:"location_name,omitempty" db:"-"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
