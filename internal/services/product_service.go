package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tienda/internal/caching"
	"tienda/internal/common"
	"tienda/internal/models"
	"tienda/internal/repositories"
)

// ProductServiceInterface defines the interface for product operations
type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error)
	SearchProducts(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	cacheSvc    caching.CacheService
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewProductService creates a new product service instance
func NewProductService(productRepo repositories.ProductRepository, cacheSvc caching.CacheService, cacheTTL time.Duration, logger *zap.Logger) ProductServiceInterface {
	return &productService{
		productRepo: productRepo,
		cacheSvc:    cacheSvc,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func validateProduct(product *models.Product) error {
	if product == nil {
		return common.NewInvalidInput("request body is required")
	}
	if err := common.ValidateRequiredString(product.Name, "name"); err != nil {
		return common.NewInvalidInput(err.Error())
	}
	if product.UnitPrice.IsNegative() {
		return common.NewInvalidInput("unit_price cannot be negative")
	}
	if product.Stock < 0 {
		return common.NewInvalidInput("stock cannot be negative")
	}
	return nil
}

// CreateProduct creates a new product
func (s *productService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetProductByID retrieves a product, serving from cache when possible
func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.cacheSvc != nil {
		cached, err := s.cacheSvc.GetProduct(ctx, id)
		if err != nil {
			s.logger.Warn("product cache read failed", zap.String("product_id", id.String()), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, common.NewNotFound("product", id)
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetProduct(ctx, product, s.cacheTTL); err != nil {
			s.logger.Warn("product cache write failed", zap.String("product_id", id.String()), zap.Error(err))
		}
	}
	return product, nil
}

// UpdateProduct updates an existing product and drops its cache entry
func (s *productService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if existing == nil {
		return common.NewNotFound("product", product.ID)
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	s.invalidate(ctx, product.ID)
	return nil
}

// DeleteProduct deletes a product and drops its cache entry
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if existing == nil {
		return common.NewNotFound("product", id)
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

// ListProducts lists products with pagination
func (s *productService) ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.productRepo.List(ctx, limit, offset)
}

// SearchProducts searches products by name, price and stock ranges
func (s *productService) SearchProducts(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	if filter == nil {
		filter = &models.ProductSearchFilter{}
	}
	filter.Query = common.SanitizeSearchQuery(filter.Query)
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	return s.productRepo.Search(ctx, filter)
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeleteProduct(ctx, id); err != nil {
		s.logger.Warn("product cache invalidation failed", zap.String("product_id", id.String()), zap.Error(err))
	}
}
