package common

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError reports a reference that does not resolve to a stored entity.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for the given entity kind.
func NewNotFound(entity string, id uuid.UUID) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InvalidInputError reports a request that fails validation before any write.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

// NewInvalidInput builds an InvalidInputError.
func NewInvalidInput(reason string) error {
	return &InvalidInputError{Reason: reason}
}

// InsufficientStockError reports a stock check failure. Available is the stock
// visible inside the sale transaction at the moment of the check, so callers
// can adjust quantities and resubmit.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsInvalidInput reports whether err is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ii *InvalidInputError
	return errors.As(err, &ii)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var is *InsufficientStockError
	return errors.As(err, &is)
}
