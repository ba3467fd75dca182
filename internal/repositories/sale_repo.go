package repositories

import (
	"context"
	"errors"

	"tienda/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SaleRepository interface {
	// Transaction-scoped writes used by the sale processor. Sales are
	// immutable after creation, so these are the only write paths.
	InsertSale(ctx context.Context, q Querier, sale *models.Sale) error
	InsertLineItem(ctx context.Context, q Querier, item *models.SaleLineItem) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	List(ctx context.Context, filter *models.SaleSearchFilter) ([]*models.Sale, error)
	CustomerSummaries(ctx context.Context, customerID uuid.UUID) ([]*models.CustomerSaleSummary, error)
}

type saleRepo struct {
	db Database
}

func NewSaleRepo(db Database) SaleRepository {
	return &saleRepo{db: db}
}

// InsertSale writes the sale header. sold_at is assigned by the database so
// it reflects transaction time.
func (r *saleRepo) InsertSale(ctx context.Context, q Querier, sale *models.Sale) error {
	query := `
		INSERT INTO sales (id, customer_id, point_of_sale_id, sold_at, created_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING sold_at, created_at
	`
	return q.QueryRow(ctx, query, sale.ID, sale.CustomerID, sale.PointOfSaleID).Scan(&sale.SoldAt, &sale.CreatedAt)
}

func (r *saleRepo) InsertLineItem(ctx context.Context, q Querier, item *models.SaleLineItem) error {
	query := `
		INSERT INTO sale_line_items (id, sale_id, product_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := q.Exec(ctx, query, item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice)
	return err
}

const saleSelectColumns = `s.id, s.customer_id, s.point_of_sale_id, s.sold_at, s.created_at,
	c.first_name || ' ' || c.last_name, c.email, p.name, l.name`

const saleJoins = `
	FROM sales s
	JOIN customers c ON c.id = s.customer_id
	JOIN points_of_sale p ON p.id = s.point_of_sale_id
	JOIN locations l ON l.id = p.location_id`

func (r *saleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	query := `SELECT ` + saleSelectColumns + saleJoins + ` WHERE s.id = $1`

	sale, err := r.scanSale(r.db.QueryRow(ctx, query, id))
	if err != nil || sale == nil {
		return nil, err
	}

	if err := r.attachLineItems(ctx, []*models.Sale{sale}); err != nil {
		return nil, err
	}
	return sale, nil
}

// List returns sales newest first, optionally filtered by customer, point of
// sale and sold_at range. The query is assembled with squirrel because every
// filter is optional.
func (r *saleRepo) List(ctx context.Context, filter *models.SaleSearchFilter) ([]*models.Sale, error) {
	if filter == nil {
		filter = &models.SaleSearchFilter{}
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	qb := squirrel.Select(
		"s.id", "s.customer_id", "s.point_of_sale_id", "s.sold_at", "s.created_at",
		"c.first_name || ' ' || c.last_name", "c.email", "p.name", "l.name",
	).
		From("sales s").
		Join("customers c ON c.id = s.customer_id").
		Join("points_of_sale p ON p.id = s.point_of_sale_id").
		Join("locations l ON l.id = p.location_id").
		OrderBy("s.sold_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if filter.CustomerID != nil {
		qb = qb.Where(squirrel.Eq{"s.customer_id": *filter.CustomerID})
	}
	if filter.PointOfSaleID != nil {
		qb = qb.Where(squirrel.Eq{"s.point_of_sale_id": *filter.PointOfSaleID})
	}
	if filter.SoldFrom != nil {
		qb = qb.Where(squirrel.GtOrEq{"s.sold_at": *filter.SoldFrom})
	}
	if filter.SoldTo != nil {
		qb = qb.Where(squirrel.LtOrEq{"s.sold_at": *filter.SoldTo})
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	sales, err := r.scanSales(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachLineItems(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// CustomerSummaries returns the flattened per-customer sale view: sale id,
// date, customer display fields, point of sale and its location.
func (r *saleRepo) CustomerSummaries(ctx context.Context, customerID uuid.UUID) ([]*models.CustomerSaleSummary, error) {
	query := `
		SELECT s.id, s.sold_at, c.first_name || ' ' || c.last_name, c.email, p.name, l.name` + saleJoins + `
		WHERE s.customer_id = $1
		ORDER BY s.sold_at DESC
	`
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*models.CustomerSaleSummary
	for rows.Next() {
		summary := &models.CustomerSaleSummary{}
		if err := rows.Scan(&summary.SaleID, &summary.SoldAt, &summary.CustomerName, &summary.CustomerEmail, &summary.PointOfSale, &summary.Location); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// attachLineItems loads line items for all given sales in one query and
// computes per-sale totals.
func (r *saleRepo) attachLineItems(ctx context.Context, sales []*models.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	ids := make([]string, 0, len(sales))
	bySale := make(map[uuid.UUID]*models.Sale, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID.String())
		bySale[s.ID] = s
	}

	query := `
		SELECT li.id, li.sale_id, li.product_id, li.quantity, li.unit_price, pr.name
		FROM sale_line_items li
		JOIN products pr ON pr.id = li.product_id
		WHERE li.sale_id = ANY($1::uuid[])
		ORDER BY li.created_at
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.SaleLineItem{}
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.ProductName); err != nil {
			return err
		}
		if sale, ok := bySale[item.SaleID]; ok {
			sale.LineItems = append(sale.LineItems, item)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, s := range sales {
		s.ComputeTotals()
	}
	return nil
}

func (r *saleRepo) scanSale(row pgx.Row) (*models.Sale, error) {
	sale := &models.Sale{}
	err := row.Scan(&sale.ID, &sale.CustomerID, &sale.PointOfSaleID, &sale.SoldAt, &sale.CreatedAt,
		&sale.CustomerName, &sale.CustomerEmail, &sale.PointOfSale, &sale.Location)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sale, nil
}

func (r *saleRepo) scanSales(rows pgx.Rows) ([]*models.Sale, error) {
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		sale := &models.Sale{}
		if err := rows.Scan(&sale.ID, &sale.CustomerID, &sale.PointOfSaleID, &sale.SoldAt, &sale.CreatedAt,
			&sale.CustomerName, &sale.CustomerEmail, &sale.PointOfSale, &sale.Location); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}
