package repositories

import (
	"context"
	"errors"

	"tienda/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PointOfSaleRepository interface {
	Create(ctx context.Context, pos *models.PointOfSale) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PointOfSale, error)
	Update(ctx context.Context, pos *models.PointOfSale) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.PointOfSale, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID, limit, offset int) ([]*models.PointOfSale, error)

	// Exists is transaction-scoped so the sale processor can validate the
	// reference inside its own transaction.
	Exists(ctx context.Context, q Querier, id uuid.UUID) (bool, error)
}

type pointOfSaleRepo struct {
	db Database
}

func NewPointOfSaleRepo(db Database) PointOfSaleRepository {
	return &pointOfSaleRepo{db: db}
}

func (r *pointOfSaleRepo) Create(ctx context.Context, pos *models.PointOfSale) error {
	query := `
		INSERT INTO points_of_sale (id, name, location_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, pos.ID, pos.Name, pos.LocationID)
	return err
}

func (r *pointOfSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PointOfSale, error) {
	pos := &models.PointOfSale{}
	query := `
		SELECT p.id, p.name, p.location_id, l.name, p.created_at, p.updated_at
		FROM points_of_sale p
		JOIN locations l ON l.id = p.location_id
		WHERE p.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&pos.ID, &pos.Name, &pos.LocationID, &pos.LocationName, &pos.CreatedAt, &pos.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return pos, nil
}

func (r *pointOfSaleRepo) Exists(ctx context.Context, q Querier, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM points_of_sale WHERE id = $1)`
	err := q.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *pointOfSaleRepo) Update(ctx context.Context, pos *models.PointOfSale) error {
	query := `
		UPDATE points_of_sale
		SET name = $1, location_id = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, pos.Name, pos.LocationID, pos.ID)
	return err
}

func (r *pointOfSaleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM points_of_sale WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *pointOfSaleRepo) List(ctx context.Context, limit, offset int) ([]*models.PointOfSale, error) {
	query := `
		SELECT p.id, p.name, p.location_id, l.name, p.created_at, p.updated_at
		FROM points_of_sale p
		JOIN locations l ON l.id = p.location_id
		ORDER BY p.name
		LIMIT $1 OFFSET $2
	`
	return r.queryMany(ctx, query, limit, offset)
}

func (r *pointOfSaleRepo) ListByLocation(ctx context.Context, locationID uuid.UUID, limit, offset int) ([]*models.PointOfSale, error) {
	query := `
		SELECT p.id, p.name, p.location_id, l.name, p.created_at, p.updated_at
		FROM points_of_sale p
		JOIN locations l ON l.id = p.location_id
		WHERE p.location_id = $1
		ORDER BY p.name
		LIMIT $2 OFFSET $3
	`
	return r.queryMany(ctx, query, locationID, limit, offset)
}

func (r *pointOfSaleRepo) queryMany(ctx context.Context, query string, args ...any) ([]*models.PointOfSale, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []*models.PointOfSale
	for rows.Next() {
		pos := &models.PointOfSale{}
		if err := rows.Scan(&pos.ID, &pos.Name, &pos.LocationID, &pos.LocationName, &pos.CreatedAt, &pos.UpdatedAt); err != nil {
			return nil, err
		}
		points = append(points, pos)
	}
	return points, rows.Err()
}
