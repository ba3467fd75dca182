package repositories

import (
	"context"
	"errors"

	"tienda/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Location, error)
}

type locationRepo struct {
	db Database
}

func NewLocationRepo(db Database) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) Create(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO locations (id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, location.ID, location.Name)
	return err
}

func (r *locationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	location := &models.Location{}
	query := `
		SELECT id, name, created_at, updated_at
		FROM locations
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&location.ID, &location.Name, &location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return location, nil
}

func (r *locationRepo) Update(ctx context.Context, location *models.Location) error {
	query := `
		UPDATE locations
		SET name = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, location.Name, location.ID)
	return err
}

func (r *locationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM locations WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *locationRepo) List(ctx context.Context, limit, offset int) ([]*models.Location, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM locations
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		location := &models.Location{}
		if err := rows.Scan(&location.ID, &location.Name, &location.CreatedAt, &location.UpdatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}
