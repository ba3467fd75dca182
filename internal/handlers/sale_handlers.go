package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tienda/internal/common"
	"tienda/internal/models"
	"tienda/internal/services"
)

// SaleHandlers handles sale-related HTTP requests
type SaleHandlers struct {
	saleService services.SaleServiceInterface
}

// NewSaleHandlers creates a new sale handlers instance
func NewSaleHandlers(saleService services.SaleServiceInterface) *SaleHandlers {
	return &SaleHandlers{saleService: saleService}
}

// SaleItemPayload is one requested line of a sale
type SaleItemPayload struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSaleRequest represents the sale creation payload
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id"`
	PointOfSaleID string            `json:"point_of_sale_id"`
	Items         []SaleItemPayload `json:"items"`
}

// CreateSale handles creating a new sale. The whole operation either commits
// with stock decremented for every line, or fails with nothing written.
func (h *SaleHandlers) CreateSale(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateSaleRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	customerID, err := common.ValidateUUID(req.CustomerID, "customer_id")
	if err != nil {
		return common.SendValidationError(c, "customer_id", err.Error())
	}
	posID, err := common.ValidateUUID(req.PointOfSaleID, "point_of_sale_id")
	if err != nil {
		return common.SendValidationError(c, "point_of_sale_id", err.Error())
	}

	saleReq := &models.SaleRequest{
		CustomerID:    customerID,
		PointOfSaleID: posID,
		Items:         make([]models.SaleItemRequest, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		productID, err := common.ValidateUUID(item.ProductID, "product_id")
		if err != nil {
			return common.SendValidationError(c, "product_id", err.Error())
		}
		saleReq.Items = append(saleReq.Items, models.SaleItemRequest{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	sale, err := h.saleService.CreateSale(ctx, saleReq)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, sale)
}

// GetSale handles getting a sale with its line items
func (h *SaleHandlers) GetSale(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	sale, err := h.saleService.GetSaleByID(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, sale)
}

// ListSales handles listing sales newest first with optional filters
func (h *SaleHandlers) ListSales(c echo.Context) error {
	ctx := c.Request().Context()

	filter := &models.SaleSearchFilter{}
	filter.Limit, filter.Offset = common.PaginationFromQuery(c)

	if raw := c.QueryParam("customer_id"); raw != "" {
		id, err := common.ValidateUUID(raw, "customer_id")
		if err != nil {
			return common.SendValidationError(c, "customer_id", err.Error())
		}
		filter.CustomerID = &id
	}
	if raw := c.QueryParam("point_of_sale_id"); raw != "" {
		id, err := common.ValidateUUID(raw, "point_of_sale_id")
		if err != nil {
			return common.SendValidationError(c, "point_of_sale_id", err.Error())
		}
		filter.PointOfSaleID = &id
	}
	if raw := c.QueryParam("sold_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return common.SendValidationError(c, "sold_from", "must be RFC3339")
		}
		filter.SoldFrom = &from
	}
	if raw := c.QueryParam("sold_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return common.SendValidationError(c, "sold_to", "must be RFC3339")
		}
		filter.SoldTo = &to
	}

	sales, err := h.saleService.ListSales(ctx, filter)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"sales":  sales,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// ListCustomerSales handles listing one customer's sales newest first
func (h *SaleHandlers) ListCustomerSales(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := common.ValidateUUID(c.Param("customerId"), "customerId")
	if err != nil {
		return common.SendValidationError(c, "customerId", err.Error())
	}

	limit, offset := common.PaginationFromQuery(c)
	sales, err := h.saleService.ListSalesByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"sales":  sales,
		"limit":  limit,
		"offset": offset,
	})
}

// CustomerSaleSummary handles the flattened per-line summary for one customer
func (h *SaleHandlers) CustomerSaleSummary(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := common.ValidateUUID(c.Param("customerId"), "customerId")
	if err != nil {
		return common.SendValidationError(c, "customerId", err.Error())
	}

	summaries, err := h.saleService.CustomerSaleSummaries(ctx, customerID)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"summary": summaries,
	})
}
