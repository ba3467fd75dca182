package repositories

import (
	"context"
	"errors"

	"tienda/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Customer, error)

	// Exists is transaction-scoped so the sale processor can validate the
	// reference inside its own transaction.
	Exists(ctx context.Context, q Querier, id uuid.UUID) (bool, error)
}

type customerRepo struct {
	db Database
}

func NewCustomerRepo(db Database) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (id, first_name, last_name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, customer.ID, customer.FirstName, customer.LastName, customer.Email, customer.Phone)
	return err
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `
		SELECT id, first_name, last_name, email, phone, created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email, &customer.Phone, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return customer, nil
}

func (r *customerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `
		SELECT id, first_name, last_name, email, phone, created_at, updated_at
		FROM customers
		WHERE email = $1
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email, &customer.Phone, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return customer, nil
}

func (r *customerRepo) Exists(ctx context.Context, q Querier, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`
	err := q.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *customerRepo) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, email = $3, phone = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, customer.FirstName, customer.LastName, customer.Email, customer.Phone, customer.ID)
	return err
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM customers WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *customerRepo) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, created_at, updated_at
		FROM customers
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email, &customer.Phone, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}
