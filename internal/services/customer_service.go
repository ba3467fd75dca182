package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tienda/internal/common"
	"tienda/internal/models"
	"tienda/internal/repositories"
)

// CustomerServiceInterface defines the interface for customer operations
type CustomerServiceInterface interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	ListCustomers(ctx context.Context, limit, offset int) ([]*models.Customer, error)
}

type customerService struct {
	customerRepo repositories.CustomerRepository
}

// NewCustomerService creates a new customer service instance
func NewCustomerService(customerRepo repositories.CustomerRepository) CustomerServiceInterface {
	return &customerService{customerRepo: customerRepo}
}

func validateCustomer(customer *models.Customer) error {
	if customer == nil {
		return common.NewInvalidInput("request body is required")
	}
	if err := common.ValidateRequiredString(customer.FirstName, "first_name"); err != nil {
		return common.NewInvalidInput(err.Error())
	}
	if err := common.ValidateRequiredString(customer.LastName, "last_name"); err != nil {
		return common.NewInvalidInput(err.Error())
	}
	if customer.Email == "" || !strings.Contains(customer.Email, "@") {
		return common.NewInvalidInput("a valid email is required")
	}
	return nil
}

// CreateCustomer creates a new customer after checking email uniqueness
func (s *customerService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if err := validateCustomer(customer); err != nil {
		return err
	}
	existing, err := s.customerRepo.GetByEmail(ctx, customer.Email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return common.NewInvalidInput("a customer with this email already exists")
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// GetCustomerByID retrieves a customer by ID
func (s *customerService) GetCustomerByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, common.NewNotFound("customer", id)
	}
	return customer, nil
}

// UpdateCustomer updates an existing customer
func (s *customerService) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	if err := validateCustomer(customer); err != nil {
		return err
	}
	existing, err := s.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		return fmt.Errorf("failed to get customer: %w", err)
	}
	if existing == nil {
		return common.NewNotFound("customer", customer.ID)
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// DeleteCustomer deletes a customer by ID
func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	existing, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get customer: %w", err)
	}
	if existing == nil {
		return common.NewNotFound("customer", id)
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// ListCustomers lists customers with pagination
func (s *customerService) ListCustomers(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.customerRepo.List(ctx, limit, offset)
}
