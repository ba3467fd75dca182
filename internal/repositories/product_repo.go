package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tienda/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	Search(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error)
	ListBelowStock(ctx context.Context, threshold int) ([]*models.Product, error)

	// Transaction-scoped methods used by the sale processor.
	GetForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*models.Product, error)
	DecrementStock(ctx context.Context, q Querier, id uuid.UUID, quantity int) error
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, name, description, unit_price, stock, created_at, updated_at`

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, name, description, unit_price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.Name, product.Description, product.UnitPrice, product.Stock)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// GetForUpdate loads a product inside an open transaction with a row lock, so
// concurrent sale transactions serialize their check-and-decrement on the same
// product.
func (r *productRepo) GetForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
		FOR UPDATE
	`
	return r.scanOne(q.QueryRow(ctx, query, id))
}

func (r *productRepo) DecrementStock(ctx context.Context, q Querier, id uuid.UUID, quantity int) error {
	query := `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := q.Exec(ctx, query, quantity, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found for stock decrement", id)
	}
	return nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, unit_price = $3, stock = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, product.Name, product.Description, product.UnitPrice, product.Stock, product.ID)
	return err
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.scanMany(rows)
}

func (r *productRepo) ListBelowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE stock <= $1
		ORDER BY stock ASC
	`
	rows, err := r.db.Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	return r.scanMany(rows)
}

func (r *productRepo) Search(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}
	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}

	queryBase := `
		SELECT ` + productColumns + `
		FROM products
		WHERE 1=1
	`
	args := []any{}
	conditionCount := 0

	if filter.Query != "" {
		conditionCount++
		queryBase += fmt.Sprintf(` AND (name ILIKE $%d OR COALESCE(description, '') ILIKE $%d)`, conditionCount, conditionCount)
		args = append(args, "%"+filter.Query+"%")
	}
	if filter.MinPrice != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND unit_price >= $%d`, conditionCount)
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND unit_price <= $%d`, conditionCount)
		args = append(args, *filter.MaxPrice)
	}
	if filter.MinStock != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND stock >= $%d`, conditionCount)
		args = append(args, *filter.MinStock)
	}
	if filter.MaxStock != nil {
		conditionCount++
		queryBase += fmt.Sprintf(` AND stock <= $%d`, conditionCount)
		args = append(args, *filter.MaxStock)
	}

	validSortFields := map[string]bool{
		"name": true, "created_at": true, "stock": true, "unit_price": true,
	}
	sortField := "created_at"
	if validSortFields[filter.SortBy] {
		sortField = filter.SortBy
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}
	queryBase += fmt.Sprintf(` ORDER BY %s %s`, sortField, sortOrder)

	conditionCount++
	queryBase += fmt.Sprintf(` LIMIT $%d`, conditionCount)
	args = append(args, filter.Limit)
	if filter.Offset > 0 {
		conditionCount++
		queryBase += fmt.Sprintf(` OFFSET $%d`, conditionCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	return r.scanMany(rows)
}

func (r *productRepo) scanOne(row pgx.Row) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.UnitPrice, &product.Stock, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepo) scanMany(rows pgx.Rows) ([]*models.Product, error) {
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.UnitPrice, &product.Stock, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
