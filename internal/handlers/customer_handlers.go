package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tienda/internal/common"
	"tienda/internal/models"
	"tienda/internal/services"
)

// CustomerHandlers handles customer-related HTTP requests
type CustomerHandlers struct {
	customerService services.CustomerServiceInterface
}

// NewCustomerHandlers creates a new customer handlers instance
func NewCustomerHandlers(customerService services.CustomerServiceInterface) *CustomerHandlers {
	return &CustomerHandlers{customerService: customerService}
}

// CustomerRequest represents the customer create/update payload
type CustomerRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
}

// CreateCustomer handles creating a new customer
func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	customer := &models.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := h.customerService.CreateCustomer(ctx, customer); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, customer)
}

// GetCustomer handles getting a customer by ID
func (h *CustomerHandlers) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	customer, err := h.customerService.GetCustomerByID(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles updating an existing customer
func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	customer := &models.Customer{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := h.customerService.UpdateCustomer(ctx, customer); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles deleting a customer
func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.customerService.DeleteCustomer(ctx, id); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListCustomers handles listing customers with pagination
func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset := common.PaginationFromQuery(c)
	customers, err := h.customerService.ListCustomers(ctx, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"customers": customers,
		"limit":     limit,
		"offset":    offset,
	})
}
