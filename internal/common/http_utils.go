package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendConflictError sends a conflict error response
func SendConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, CreateErrorResponse("CONFLICT", message, nil))
}

// SendDomainError maps a service error onto the wire taxonomy: not-found
// references become 404s, validation and stock failures 400s, unique and
// foreign key violations 409s, everything else a generic 500.
func SendDomainError(c echo.Context, err error) error {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return SendNotFoundError(c, nf.Entity)
	}

	var ii *InvalidInputError
	if errors.As(err, &ii) {
		return SendClientError(c, ii.Reason)
	}

	var is *InsufficientStockError
	if errors.As(err, &is) {
		details := map[string]string{
			"product_id": is.ProductID.String(),
			"available":  strconv.Itoa(is.Available),
			"requested":  strconv.Itoa(is.Requested),
		}
		return c.JSON(http.StatusBadRequest, CreateErrorResponse("INSUFFICIENT_STOCK", is.Error(), details))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return SendConflictError(c, "a record with the same unique value already exists")
		case "23503": // foreign_key_violation
			return SendConflictError(c, "record is referenced by other records")
		}
	}

	return SendServerError(c, "operation failed")
}

// ValidateUUID validates UUID path/query parameters
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID", fieldName)
	}

	return id, nil
}

// ValidateRequiredString ensures a string field is present and non-blank
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// ValidatePaginationParams clamps limit/offset to sane bounds
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// PaginationFromQuery reads limit/offset query parameters with defaults
func PaginationFromQuery(c echo.Context) (int, int) {
	limit := defaultPageSize
	offset := 0

	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			offset = o
		}
	}

	return ValidatePaginationParams(limit, offset)
}

// SanitizeSearchQuery strips characters that would leak into LIKE patterns
func SanitizeSearchQuery(query string) string {
	query = strings.TrimSpace(query)
	query = strings.ReplaceAll(query, "%", "")
	query = strings.ReplaceAll(query, "_", "")
	if len(query) > 200 {
		query = query[:200]
	}
	return query
}
