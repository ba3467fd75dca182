package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tienda/internal/common"
	"tienda/internal/models"
	"tienda/internal/repositories"
)

// PointOfSaleServiceInterface defines the interface for point of sale operations
type PointOfSaleServiceInterface interface {
	CreatePointOfSale(ctx context.Context, pos *models.PointOfSale) error
	GetPointOfSaleByID(ctx context.Context, id uuid.UUID) (*models.PointOfSale, error)
	UpdatePointOfSale(ctx context.Context, pos *models.PointOfSale) error
	DeletePointOfSale(ctx context.Context, id uuid.UUID) error
	ListPointsOfSale(ctx context.Context, limit, offset int) ([]*models.PointOfSale, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID, limit, offset int) ([]*models.PointOfSale, error)
}

type pointOfSaleService struct {
	posRepo      repositories.PointOfSaleRepository
	locationRepo repositories.LocationRepository
}

// NewPointOfSaleService creates a new point of sale service instance
func NewPointOfSaleService(posRepo repositories.PointOfSaleRepository, locationRepo repositories.LocationRepository) PointOfSaleServiceInterface {
	return &pointOfSaleService{
		posRepo:      posRepo,
		locationRepo: locationRepo,
	}
}

func (s *pointOfSaleService) validate(ctx context.Context, pos *models.PointOfSale) error {
	if pos == nil {
		return common.NewInvalidInput("request body is required")
	}
	if err := common.ValidateRequiredString(pos.Name, "name"); err != nil {
		return common.NewInvalidInput(err.Error())
	}
	if pos.LocationID == uuid.Nil {
		return common.NewInvalidInput("location_id is required")
	}
	location, err := s.locationRepo.GetByID(ctx, pos.LocationID)
	if err != nil {
		return fmt.Errorf("failed to look up location: %w", err)
	}
	if location == nil {
		return common.NewNotFound("location", pos.LocationID)
	}
	return nil
}

// CreatePointOfSale creates a new point of sale under an existing location
func (s *pointOfSaleService) CreatePointOfSale(ctx context.Context, pos *models.PointOfSale) error {
	if err := s.validate(ctx, pos); err != nil {
		return err
	}
	if pos.ID == uuid.Nil {
		pos.ID = uuid.New()
	}
	if err := s.posRepo.Create(ctx, pos); err != nil {
		return fmt.Errorf("failed to create point of sale: %w", err)
	}
	return nil
}

// GetPointOfSaleByID retrieves a point of sale by ID
func (s *pointOfSaleService) GetPointOfSaleByID(ctx context.Context, id uuid.UUID) (*models.PointOfSale, error) {
	pos, err := s.posRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get point of sale: %w", err)
	}
	if pos == nil {
		return nil, common.NewNotFound("point of sale", id)
	}
	return pos, nil
}

// UpdatePointOfSale updates an existing point of sale
func (s *pointOfSaleService) UpdatePointOfSale(ctx context.Context, pos *models.PointOfSale) error {
	existing, err := s.posRepo.GetByID(ctx, pos.ID)
	if err != nil {
		return fmt.Errorf("failed to get point of sale: %w", err)
	}
	if existing == nil {
		return common.NewNotFound("point of sale", pos.ID)
	}
	if err := s.validate(ctx, pos); err != nil {
		return err
	}
	if err := s.posRepo.Update(ctx, pos); err != nil {
		return fmt.Errorf("failed to update point of sale: %w", err)
	}
	return nil
}

// DeletePointOfSale deletes a point of sale by ID
func (s *pointOfSaleService) DeletePointOfSale(ctx context.Context, id uuid.UUID) error {
	existing, err := s.posRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get point of sale: %w", err)
	}
	if existing == nil {
		return common.NewNotFound("point of sale", id)
	}
	if err := s.posRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete point of sale: %w", err)
	}
	return nil
}

// ListPointsOfSale lists points of sale with pagination
func (s *pointOfSaleService) ListPointsOfSale(ctx context.Context, limit, offset int) ([]*models.PointOfSale, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.posRepo.List(ctx, limit, offset)
}

// ListByLocation lists the points of sale under one location
func (s *pointOfSaleService) ListByLocation(ctx context.Context, locationID uuid.UUID, limit, offset int) ([]*models.PointOfSale, error) {
	location, err := s.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up location: %w", err)
	}
	if location == nil {
		return nil, common.NewNotFound("location", locationID)
	}
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.posRepo.ListByLocation(ctx, locationID, limit, offset)
}
