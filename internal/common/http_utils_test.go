package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func sendDomainError(t *testing.T, err error) (*httptest.ResponseRecorder, *ErrorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, SendDomainError(c, err))

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, &resp
}

func TestSendDomainError_NotFound(t *testing.T) {
	rec, resp := sendDomainError(t, NewNotFound("customer", uuid.New()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestSendDomainError_InvalidInput(t *testing.T) {
	rec, resp := sendDomainError(t, NewInvalidInput("quantity must be at least 1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CLIENT_ERROR", resp.Error.Code)
	assert.Equal(t, "quantity must be at least 1", resp.Error.Message)
}

func TestSendDomainError_InsufficientStock(t *testing.T) {
	rec, resp := sendDomainError(t, &InsufficientStockError{
		ProductID: uuid.New(), ProductName: "Harina", Available: 2, Requested: 5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
	assert.Equal(t, "2", resp.Error.Details["available"])
	assert.Equal(t, "5", resp.Error.Details["requested"])
}

func TestSendDomainError_ForeignKeyViolationMapsTo409(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}
	rec, resp := sendDomainError(t, fmt.Errorf("delete product: %w", pgErr))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestSendDomainError_UniqueViolationMapsTo409(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	rec, _ := sendDomainError(t, pgErr)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSendDomainError_UnknownErrorIs500(t *testing.T) {
	rec, resp := sendDomainError(t, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "SERVER_ERROR", resp.Error.Code)
}

func TestValidatePaginationParams(t *testing.T) {
	limit, offset := ValidatePaginationParams(0, -5)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 0, offset)

	limit, _ = ValidatePaginationParams(10000, 0)
	assert.Equal(t, 500, limit)
}

func TestSanitizeSearchQuery(t *testing.T) {
	assert.Equal(t, "yerba", SanitizeSearchQuery(" yerba% "))
	assert.Equal(t, "azucar", SanitizeSearchQuery("azu_car"))
}
