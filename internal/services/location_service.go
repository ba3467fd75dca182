package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tienda/internal/common"
	"tienda/internal/models"
	"tienda/internal/repositories"
)

// LocationServiceInterface defines the interface for location operations
type LocationServiceInterface interface {
	CreateLocation(ctx context.Context, location *models.Location) error
	GetLocationByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	UpdateLocation(ctx context.Context, location *models.Location) error
	DeleteLocation(ctx context.Context, id uuid.UUID) error
	ListLocations(ctx context.Context, limit, offset int) ([]*models.Location, error)
}

type locationService struct {
	locationRepo repositories.LocationRepository
}

// NewLocationService creates a new location service instance
func NewLocationService(locationRepo repositories.LocationRepository) LocationServiceInterface {
	return &locationService{locationRepo: locationRepo}
}

func validateLocation(location *models.Location) error {
	if location == nil {
		return common.NewInvalidInput("request body is required")
	}
	if err := common.ValidateRequiredString(location.Name, "name"); err != nil {
		return common.NewInvalidInput(err.Error())
	}
	return nil
}

// CreateLocation creates a new location
func (s *locationService) CreateLocation(ctx context.Context, location *models.Location) error {
	if err := validateLocation(location); err != nil {
		return err
	}
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

// GetLocationByID retrieves a location by ID
func (s *locationService) GetLocationByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	if location == nil {
		return nil, common.NewNotFound("location", id)
	}
	return location, nil
}

// UpdateLocation updates an existing location
func (s *locationService) UpdateLocation(ctx context.Context, location *models.Location) error {
	if err := validateLocation(location); err != nil {
		return err
	}
	existing, err := s.locationRepo.GetByID(ctx, location.ID)
	if err != nil {
		return fmt.Errorf("failed to get location: %w", err)
	}
	if existing == nil {
		return common.NewNotFound("location", location.ID)
	}
	if err := s.locationRepo.Update(ctx, location); err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	return nil
}

// DeleteLocation deletes a location by ID
func (s *locationService) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	existing, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get location: %w", err)
	}
	if existing == nil {
		return common.NewNotFound("location", id)
	}
	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	return nil
}

// ListLocations lists locations with pagination
func (s *locationService) ListLocations(ctx context.Context, limit, offset int) ([]*models.Location, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.locationRepo.List(ctx, limit, offset)
}
