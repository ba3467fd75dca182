package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tienda/internal/common"
	"tienda/internal/models"
	"tienda/internal/services"
)

// PointOfSaleHandlers handles point of sale HTTP requests
type PointOfSaleHandlers struct {
	posService services.PointOfSaleServiceInterface
}

// NewPointOfSaleHandlers creates a new point of sale handlers instance
func NewPointOfSaleHandlers(posService services.PointOfSaleServiceInterface) *PointOfSaleHandlers {
	return &PointOfSaleHandlers{posService: posService}
}

// PointOfSaleRequest represents the point of sale create/update payload
type PointOfSaleRequest struct {
	Name       string `json:"name"`
	LocationID string `json:"location_id"`
}

func (r *PointOfSaleRequest) toModel() (*models.PointOfSale, error) {
	locationID, err := common.ValidateUUID(r.LocationID, "location_id")
	if err != nil {
		return nil, err
	}
	return &models.PointOfSale{
		Name:       r.Name,
		LocationID: locationID,
	}, nil
}

// CreatePointOfSale handles creating a new point of sale
func (h *PointOfSaleHandlers) CreatePointOfSale(c echo.Context) error {
	ctx := c.Request().Context()

	var req PointOfSaleRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	pos, err := req.toModel()
	if err != nil {
		return common.SendValidationError(c, "location_id", err.Error())
	}
	if err := h.posService.CreatePointOfSale(ctx, pos); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, pos)
}

// GetPointOfSale handles getting a point of sale by ID
func (h *PointOfSaleHandlers) GetPointOfSale(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	pos, err := h.posService.GetPointOfSaleByID(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, pos)
}

// UpdatePointOfSale handles updating an existing point of sale
func (h *PointOfSaleHandlers) UpdatePointOfSale(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req PointOfSaleRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	pos, err := req.toModel()
	if err != nil {
		return common.SendValidationError(c, "location_id", err.Error())
	}
	pos.ID = id
	if err := h.posService.UpdatePointOfSale(ctx, pos); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, pos)
}

// DeletePointOfSale handles deleting a point of sale
func (h *PointOfSaleHandlers) DeletePointOfSale(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.posService.DeletePointOfSale(ctx, id); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListPointsOfSale handles listing points of sale with pagination
func (h *PointOfSaleHandlers) ListPointsOfSale(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset := common.PaginationFromQuery(c)
	points, err := h.posService.ListPointsOfSale(ctx, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"points_of_sale": points,
		"limit":          limit,
		"offset":         offset,
	})
}
