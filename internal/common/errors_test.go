package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	id := uuid.New()
	err := NewNotFound("customer", id)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsInvalidInput(err))
	assert.Contains(t, err.Error(), "customer not found")
	assert.Contains(t, err.Error(), id.String())
}

func TestNotFoundError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create sale: %w", NewNotFound("product", uuid.New()))
	assert.True(t, IsNotFound(err))
}

func TestInvalidInputError(t *testing.T) {
	err := NewInvalidInput("quantity must be at least 1")

	assert.True(t, IsInvalidInput(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "quantity must be at least 1", err.Error())
}

func TestInsufficientStockError(t *testing.T) {
	productID := uuid.New()
	err := &InsufficientStockError{
		ProductID:   productID,
		ProductName: "Harina",
		Available:   2,
		Requested:   5,
	}

	assert.True(t, IsInsufficientStock(err))
	assert.Contains(t, err.Error(), "Harina")
	assert.Contains(t, err.Error(), "available 2")
	assert.Contains(t, err.Error(), "requested 5")

	var stockErr *InsufficientStockError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &stockErr))
	assert.Equal(t, productID, stockErr.ProductID)
}

func TestTaxonomyDoesNotMatchPlainErrors(t *testing.T) {
	err := errors.New("connection reset")

	assert.False(t, IsNotFound(err))
	assert.False(t, IsInvalidInput(err))
	assert.False(t, IsInsufficientStock(err))
}
