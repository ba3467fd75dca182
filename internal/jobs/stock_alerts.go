package jobs

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tienda/internal/repositories"
)

// StockAlertService scans for products running low and reports them.
type StockAlertService struct {
	productRepo repositories.ProductRepository
	threshold   int
	logger      *zap.Logger
}

// StockAlert describes one product under the configured threshold.
type StockAlert struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	CurrentStock int       `json:"current_stock"`
	Threshold    int       `json:"threshold"`
}

func NewStockAlertService(productRepo repositories.ProductRepository, threshold int, logger *zap.Logger) *StockAlertService {
	if threshold <= 0 {
		threshold = 10
	}
	return &StockAlertService{
		productRepo: productRepo,
		threshold:   threshold,
		logger:      logger,
	}
}

// CheckLowStock returns an alert for every product at or below the threshold.
func (s *StockAlertService) CheckLowStock(ctx context.Context) ([]StockAlert, error) {
	products, err := s.productRepo.ListBelowStock(ctx, s.threshold)
	if err != nil {
		return nil, err
	}

	alerts := make([]StockAlert, 0, len(products))
	for _, p := range products {
		alerts = append(alerts, StockAlert{
			ProductID:    p.ID,
			ProductName:  p.Name,
			CurrentStock: p.Stock,
			Threshold:    s.threshold,
		})
	}
	return alerts, nil
}

// RunScheduledCheck is the gocron entry point: scan and log the results.
func (s *StockAlertService) RunScheduledCheck(ctx context.Context) error {
	alerts, err := s.CheckLowStock(ctx)
	if err != nil {
		s.logger.Error("low stock check failed", zap.Error(err))
		return err
	}

	if len(alerts) == 0 {
		s.logger.Debug("low stock check found nothing")
		return nil
	}

	for _, alert := range alerts {
		s.logger.Warn("low stock",
			zap.String("product_id", alert.ProductID.String()),
			zap.String("product_name", alert.ProductName),
			zap.Int("current_stock", alert.CurrentStock),
			zap.Int("threshold", alert.Threshold),
		)
	}
	return nil
}
