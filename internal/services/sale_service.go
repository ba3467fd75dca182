package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tienda/internal/caching"
	"tienda/internal/common"
	"tienda/internal/models"
	"tienda/internal/repositories"
)

// SaleServiceInterface defines the interface for sale operations. Sales are
// created once and never updated or deleted; every other method is a read.
type SaleServiceInterface interface {
	CreateSale(ctx context.Context, req *models.SaleRequest) (*models.Sale, error)
	GetSaleByID(ctx context.Context, saleID uuid.UUID) (*models.Sale, error)
	ListSales(ctx context.Context, filter *models.SaleSearchFilter) ([]*models.Sale, error)
	ListSalesByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*models.Sale, error)
	CustomerSaleSummaries(ctx context.Context, customerID uuid.UUID) ([]*models.CustomerSaleSummary, error)
}

type saleService struct {
	db           repositories.Database
	saleRepo     repositories.SaleRepository
	customerRepo repositories.CustomerRepository
	posRepo      repositories.PointOfSaleRepository
	productRepo  repositories.ProductRepository
	cacheSvc     caching.CacheService
	logger       *zap.Logger
}

// NewSaleService creates a new sale service instance
func NewSaleService(
	db repositories.Database,
	saleRepo repositories.SaleRepository,
	customerRepo repositories.CustomerRepository,
	posRepo repositories.PointOfSaleRepository,
	productRepo repositories.ProductRepository,
	cacheSvc caching.CacheService,
	logger *zap.Logger,
) SaleServiceInterface {
	return &saleService{
		db:           db,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		posRepo:      posRepo,
		productRepo:  productRepo,
		cacheSvc:     cacheSvc,
		logger:       logger,
	}
}

// validateSaleRequest rejects structurally invalid requests before any
// database work.
func validateSaleRequest(req *models.SaleRequest) error {
	if req == nil {
		return common.NewInvalidInput("request body is required")
	}
	if req.CustomerID == uuid.Nil {
		return common.NewInvalidInput("customer_id is required")
	}
	if req.PointOfSaleID == uuid.Nil {
		return common.NewInvalidInput("point_of_sale_id is required")
	}
	if len(req.Items) == 0 {
		return common.NewInvalidInput("sale must have at least one line item")
	}
	for i, item := range req.Items {
		if item.ProductID == uuid.Nil {
			return common.NewInvalidInput(fmt.Sprintf("items[%d]: product_id is required", i))
		}
		if item.Quantity < 1 {
			return common.NewInvalidInput(fmt.Sprintf("items[%d]: quantity must be at least 1", i))
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return common.NewInvalidInput(fmt.Sprintf("items[%d]: unit_price cannot be negative", i))
		}
	}
	return nil
}

// CreateSale runs the sale transaction: it validates the customer and point
// of sale, writes the sale header, and then processes items strictly in
// request order. Each item locks its product row, checks stock against the
// value visible inside the transaction, snapshots the unit price, and
// decrements stock. Any failure rolls the whole transaction back, so a failed
// attempt leaves no residue.
//
// Duplicate product ids are processed independently: the second occurrence is
// checked against the stock already decremented by the first, which matches
// the sequential semantics of the stock check.
func (s *saleService) CreateSale(ctx context.Context, req *models.SaleRequest) (*models.Sale, error) {
	if err := validateSaleRequest(req); err != nil {
		return nil, err
	}

	sale := &models.Sale{
		ID:            uuid.New(),
		CustomerID:    req.CustomerID,
		PointOfSaleID: req.PointOfSaleID,
	}
	touched := make([]uuid.UUID, 0, len(req.Items))

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		customerExists, err := s.customerRepo.Exists(ctx, tx, req.CustomerID)
		if err != nil {
			return fmt.Errorf("failed to look up customer: %w", err)
		}
		if !customerExists {
			return common.NewNotFound("customer", req.CustomerID)
		}

		posExists, err := s.posRepo.Exists(ctx, tx, req.PointOfSaleID)
		if err != nil {
			return fmt.Errorf("failed to look up point of sale: %w", err)
		}
		if !posExists {
			return common.NewNotFound("point of sale", req.PointOfSaleID)
		}

		if err := s.saleRepo.InsertSale(ctx, tx, sale); err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		for _, item := range req.Items {
			product, err := s.productRepo.GetForUpdate(ctx, tx, item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to lock product %s: %w", item.ProductID, err)
			}
			if product == nil {
				return common.NewNotFound("product", item.ProductID)
			}

			if product.Stock < item.Quantity {
				return &common.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   item.Quantity,
				}
			}

			// Snapshot the price: explicit override wins, otherwise the
			// product's current price. Later price changes never touch
			// persisted lines.
			unitPrice := product.UnitPrice
			if item.UnitPrice != nil {
				unitPrice = *item.UnitPrice
			}

			lineItem := &models.SaleLineItem{
				ID:        uuid.New(),
				SaleID:    sale.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
			}
			if err := s.saleRepo.InsertLineItem(ctx, tx, lineItem); err != nil {
				return fmt.Errorf("failed to insert line item for product %s: %w", product.ID, err)
			}

			if err := s.productRepo.DecrementStock(ctx, tx, product.ID, item.Quantity); err != nil {
				return fmt.Errorf("failed to decrement stock for product %s: %w", product.ID, err)
			}
			touched = append(touched, product.ID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stock changed, so cached product reads are stale. Best effort: a cache
	// miss is cheaper than a wrong hit.
	if s.cacheSvc != nil {
		if cacheErr := s.cacheSvc.DeleteProducts(ctx, touched); cacheErr != nil {
			s.logger.Warn("failed to invalidate product cache after sale",
				zap.String("sale_id", sale.ID.String()),
				zap.Error(cacheErr))
		}
	}

	created, err := s.saleRepo.GetByID(ctx, sale.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created sale: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("created sale %s not found after commit", sale.ID)
	}

	s.logger.Info("sale created",
		zap.String("sale_id", created.ID.String()),
		zap.String("customer_id", created.CustomerID.String()),
		zap.Int("line_items", len(created.LineItems)),
		zap.String("total", created.Total.String()),
	)

	return created, nil
}

// GetSaleByID retrieves a sale with its line items
func (s *saleService) GetSaleByID(ctx context.Context, saleID uuid.UUID) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	if sale == nil {
		return nil, common.NewNotFound("sale", saleID)
	}
	return sale, nil
}

// ListSales lists sales newest first with optional filters
func (s *saleService) ListSales(ctx context.Context, filter *models.SaleSearchFilter) ([]*models.Sale, error) {
	if filter == nil {
		filter = &models.SaleSearchFilter{}
	}
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)
	return s.saleRepo.List(ctx, filter)
}

// ListSalesByCustomer lists a customer's sales newest first
func (s *saleService) ListSalesByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*models.Sale, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	if customer == nil {
		return nil, common.NewNotFound("customer", customerID)
	}

	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.saleRepo.List(ctx, &models.SaleSearchFilter{
		CustomerID: &customerID,
		Limit:      limit,
		Offset:     offset,
	})
}

// CustomerSaleSummaries returns the flattened sale view for one customer
func (s *saleService) CustomerSaleSummaries(ctx context.Context, customerID uuid.UUID) ([]*models.CustomerSaleSummary, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	if customer == nil {
		return nil, common.NewNotFound("customer", customerID)
	}
	return s.saleRepo.CustomerSummaries(ctx, customerID)
}

// withTx runs fn inside a transaction, rolling back on error or panic.
func (s *saleService) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Error("transaction rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
