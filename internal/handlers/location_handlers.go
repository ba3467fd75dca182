package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tienda/internal/common"
	"tienda/internal/models"
	"tienda/internal/services"
)

// LocationHandlers handles location-related HTTP requests
type LocationHandlers struct {
	locationService services.LocationServiceInterface
	posService      services.PointOfSaleServiceInterface
}

// NewLocationHandlers creates a new location handlers instance
func NewLocationHandlers(locationService services.LocationServiceInterface, posService services.PointOfSaleServiceInterface) *LocationHandlers {
	return &LocationHandlers{
		locationService: locationService,
		posService:      posService,
	}
}

// LocationRequest represents the location create/update payload
type LocationRequest struct {
	Name string `json:"name"`
}

// CreateLocation handles creating a new location
func (h *LocationHandlers) CreateLocation(c echo.Context) error {
	ctx := c.Request().Context()

	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	location := &models.Location{Name: req.Name}
	if err := h.locationService.CreateLocation(ctx, location); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, location)
}

// GetLocation handles getting a location by ID
func (h *LocationHandlers) GetLocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	location, err := h.locationService.GetLocationByID(ctx, id)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, location)
}

// UpdateLocation handles updating an existing location
func (h *LocationHandlers) UpdateLocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	location := &models.Location{ID: id, Name: req.Name}
	if err := h.locationService.UpdateLocation(ctx, location); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, location)
}

// DeleteLocation handles deleting a location
func (h *LocationHandlers) DeleteLocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.locationService.DeleteLocation(ctx, id); err != nil {
		return common.SendDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListLocations handles listing locations with pagination
func (h *LocationHandlers) ListLocations(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset := common.PaginationFromQuery(c)
	locations, err := h.locationService.ListLocations(ctx, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"locations": locations,
		"limit":     limit,
		"offset":    offset,
	})
}

// ListLocationPointsOfSale handles listing the points of sale under a location
func (h *LocationHandlers) ListLocationPointsOfSale(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	limit, offset := common.PaginationFromQuery(c)
	points, err := h.posService.ListByLocation(ctx, id, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"points_of_sale": points,
		"limit":          limit,
		"offset":         offset,
	})
}
