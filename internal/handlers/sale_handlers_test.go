package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tienda/internal/common"
	"tienda/internal/models"
)

type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) CreateSale(ctx context.Context, req *models.SaleRequest) (*models.Sale, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockSaleService) GetSaleByID(ctx context.Context, saleID uuid.UUID) (*models.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockSaleService) ListSales(ctx context.Context, filter *models.SaleSearchFilter) ([]*models.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Sale), args.Error(1)
}

func (m *MockSaleService) ListSalesByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*models.Sale, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return args.Get(0).([]*models.Sale), args.Error(1)
}

func (m *MockSaleService) CustomerSaleSummaries(ctx context.Context, customerID uuid.UUID) ([]*models.CustomerSaleSummary, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]*models.CustomerSaleSummary), args.Error(1)
}

func newSaleRequest(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/sales", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateSale_Created(t *testing.T) {
	svc := new(MockSaleService)
	h := NewSaleHandlers(svc)

	customerID := uuid.New()
	posID := uuid.New()
	productID := uuid.New()

	sale := &models.Sale{
		ID:            uuid.New(),
		CustomerID:    customerID,
		PointOfSaleID: posID,
		Total:         decimal.RequireFromString("76.50"),
	}
	svc.On("CreateSale", mock.Anything, mock.MatchedBy(func(req *models.SaleRequest) bool {
		return req.CustomerID == customerID && len(req.Items) == 1 && req.Items[0].Quantity == 3
	})).Return(sale, nil)

	body := `{"customer_id":"` + customerID.String() + `","point_of_sale_id":"` + posID.String() +
		`","items":[{"product_id":"` + productID.String() + `","quantity":3}]}`
	c, rec := newSaleRequest(t, body)

	err := h.CreateSale(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var got models.Sale
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, sale.ID, got.ID)
}

func TestCreateSale_InvalidCustomerUUID(t *testing.T) {
	h := NewSaleHandlers(new(MockSaleService))

	c, rec := newSaleRequest(t, `{"customer_id":"not-a-uuid","point_of_sale_id":"`+uuid.NewString()+`","items":[]}`)

	err := h.CreateSale(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSale_InsufficientStockMapsTo400(t *testing.T) {
	svc := new(MockSaleService)
	h := NewSaleHandlers(svc)

	productID := uuid.New()
	svc.On("CreateSale", mock.Anything, mock.Anything).Return(nil, &common.InsufficientStockError{
		ProductID:   productID,
		ProductName: "Harina",
		Available:   2,
		Requested:   5,
	})

	body := `{"customer_id":"` + uuid.NewString() + `","point_of_sale_id":"` + uuid.NewString() +
		`","items":[{"product_id":"` + productID.String() + `","quantity":5}]}`
	c, rec := newSaleRequest(t, body)

	err := h.CreateSale(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp common.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
	assert.Equal(t, "2", resp.Error.Details["available"])
	assert.Equal(t, "5", resp.Error.Details["requested"])
}

func TestCreateSale_CustomerNotFoundMapsTo404(t *testing.T) {
	svc := new(MockSaleService)
	h := NewSaleHandlers(svc)

	customerID := uuid.New()
	svc.On("CreateSale", mock.Anything, mock.Anything).
		Return(nil, common.NewNotFound("customer", customerID))

	body := `{"customer_id":"` + customerID.String() + `","point_of_sale_id":"` + uuid.NewString() +
		`","items":[{"product_id":"` + uuid.NewString() + `","quantity":1}]}`
	c, rec := newSaleRequest(t, body)

	err := h.CreateSale(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSale_InvalidID(t *testing.T) {
	h := NewSaleHandlers(new(MockSaleService))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/sales/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.GetSale(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCustomerSales_NotFound(t *testing.T) {
	svc := new(MockSaleService)
	h := NewSaleHandlers(svc)

	customerID := uuid.New()
	svc.On("ListSalesByCustomer", mock.Anything, customerID, 50, 0).
		Return(([]*models.Sale)(nil), common.NewNotFound("customer", customerID))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/sales/customer/"+customerID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("customerId")
	c.SetParamValues(customerID.String())

	err := h.ListCustomerSales(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
