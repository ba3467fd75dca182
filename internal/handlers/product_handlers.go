package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tienda/internal/common"
	"tienda/internal/models"
	"tienda/internal/services"
)

// ProductHandlers handles product-related HTTP requests
type ProductHandlers struct {
	productService services.ProductServiceInterface
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductServiceInterface) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// ProductRequest represents the product create/update payload
type ProductRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int             `json:"stock"`
}

// CreateProduct handles creating a new product
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Stock:       req.Stock,
	}
	if err := h.productService.CreateProduct(ctx, product); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, product)
}

// GetProduct handles getting a product by ID
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	product, err := h.productService.GetProductByID(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

// UpdateProduct handles updating an existing product
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	product := &models.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Stock:       req.Stock,
	}
	if err := h.productService.UpdateProduct(ctx, product); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.productService.DeleteProduct(ctx, id); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListProducts handles listing products with pagination
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset := common.PaginationFromQuery(c)
	products, err := h.productService.ListProducts(ctx, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	})
}

// SearchProducts handles searching products by name, price and stock ranges
func (h *ProductHandlers) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()

	filter := &models.ProductSearchFilter{
		Query:     c.QueryParam("q"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}
	filter.Limit, filter.Offset = common.PaginationFromQuery(c)

	if raw := c.QueryParam("min_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return common.SendValidationError(c, "min_price", "must be a valid decimal")
		}
		filter.MinPrice = &price
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return common.SendValidationError(c, "max_price", "must be a valid decimal")
		}
		filter.MaxPrice = &price
	}
	if raw := c.QueryParam("min_stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return common.SendValidationError(c, "min_stock", "must be an integer")
		}
		filter.MinStock = &stock
	}
	if raw := c.QueryParam("max_stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return common.SendValidationError(c, "max_stock", "must be an integer")
		}
		filter.MaxStock = &stock
	}

	products, err := h.productService.SearchProducts(ctx, filter)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}
