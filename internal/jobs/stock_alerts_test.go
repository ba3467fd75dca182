package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"tienda/internal/models"
	"tienda/internal/repositories"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepo) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *mockProductRepo) Search(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *mockProductRepo) ListBelowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *mockProductRepo) GetForUpdate(ctx context.Context, q repositories.Querier, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepo) DecrementStock(ctx context.Context, q repositories.Querier, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, q, id, quantity)
	return args.Error(0)
}

func TestCheckLowStock_ReturnsAlerts(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewStockAlertService(repo, 10, zap.NewNop())

	low := []*models.Product{
		{ID: uuid.New(), Name: "Harina", Stock: 2},
		{ID: uuid.New(), Name: "Azucar", Stock: 8},
	}
	repo.On("ListBelowStock", mock.Anything, 10).Return(low, nil)

	alerts, err := svc.CheckLowStock(context.Background())
	assert.NoError(t, err)
	assert.Len(t, alerts, 2)
	assert.Equal(t, "Harina", alerts[0].ProductName)
	assert.Equal(t, 2, alerts[0].CurrentStock)
	assert.Equal(t, 10, alerts[0].Threshold)
}

func TestCheckLowStock_DefaultsThreshold(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewStockAlertService(repo, 0, zap.NewNop())

	repo.On("ListBelowStock", mock.Anything, 10).Return([]*models.Product{}, nil)

	alerts, err := svc.CheckLowStock(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestRunScheduledCheck_PropagatesError(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewStockAlertService(repo, 10, zap.NewNop())

	repo.On("ListBelowStock", mock.Anything, 10).Return(nil, errors.New("db down"))

	err := svc.RunScheduledCheck(context.Background())
	assert.Error(t, err)
}

func TestRunScheduledCheck_NoAlerts(t *testing.T) {
	repo := new(mockProductRepo)
	svc := NewStockAlertService(repo, 10, zap.NewNop())

	repo.On("ListBelowStock", mock.Anything, 10).Return([]*models.Product{}, nil)

	err := svc.RunScheduledCheck(context.Background())
	assert.NoError(t, err)
}
