package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"tienda/internal/models"
)

type ProductRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      ProductRepository
	productID uuid.UUID
	ctx       context.Context
}

func (suite *ProductRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewProductRepo(mock)
	suite.productID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *ProductRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}

func (suite *ProductRepoTestSuite) productRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "description", "unit_price", "stock", "created_at", "updated_at"})
}

func (suite *ProductRepoTestSuite) TestCreate_Success() {
	product := &models.Product{
		ID:        suite.productID,
		Name:      "Yerba Mate 1kg",
		UnitPrice: decimal.RequireFromString("25.50"),
		Stock:     10,
	}

	suite.mock.ExpectExec(`INSERT INTO products`).
		WithArgs(product.ID, product.Name, product.Description, product.UnitPrice, product.Stock).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, product)
	assert.NoError(suite.T(), err)
}

func (suite *ProductRepoTestSuite) TestGetByID_Found() {
	suite.mock.ExpectQuery(`SELECT id, name, description, unit_price, stock, created_at, updated_at\s+FROM products\s+WHERE id = \$1`).
		WithArgs(suite.productID).
		WillReturnRows(suite.productRows().
			AddRow(suite.productID, "Yerba Mate 1kg", (*string)(nil), decimal.RequireFromString("25.50"), 10, time.Now(), time.Now()))

	product, err := suite.repo.GetByID(suite.ctx, suite.productID)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), product)
	assert.Equal(suite.T(), "Yerba Mate 1kg", product.Name)
	assert.Equal(suite.T(), 10, product.Stock)
}

func (suite *ProductRepoTestSuite) TestGetByID_NotFoundReturnsNil() {
	suite.mock.ExpectQuery(`FROM products\s+WHERE id = \$1`).
		WithArgs(suite.productID).
		WillReturnRows(suite.productRows())

	product, err := suite.repo.GetByID(suite.ctx, suite.productID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), product)
}

func (suite *ProductRepoTestSuite) TestGetForUpdate_LocksRow() {
	suite.mock.ExpectQuery(`FROM products\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs(suite.productID).
		WillReturnRows(suite.productRows().
			AddRow(suite.productID, "Cafe Molido", (*string)(nil), decimal.RequireFromString("80.00"), 5, time.Now(), time.Now()))

	product, err := suite.repo.GetForUpdate(suite.ctx, suite.mock, suite.productID)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), product)
	assert.Equal(suite.T(), 5, product.Stock)
}

func (suite *ProductRepoTestSuite) TestDecrementStock_Success() {
	suite.mock.ExpectExec(`UPDATE products\s+SET stock = stock - \$1`).
		WithArgs(3, suite.productID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.DecrementStock(suite.ctx, suite.mock, suite.productID, 3)
	assert.NoError(suite.T(), err)
}

func (suite *ProductRepoTestSuite) TestDecrementStock_MissingProduct() {
	suite.mock.ExpectExec(`UPDATE products\s+SET stock = stock - \$1`).
		WithArgs(3, suite.productID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.DecrementStock(suite.ctx, suite.mock, suite.productID, 3)
	assert.Error(suite.T(), err)
}

func (suite *ProductRepoTestSuite) TestListBelowStock() {
	suite.mock.ExpectQuery(`FROM products\s+WHERE stock <= \$1\s+ORDER BY stock ASC`).
		WithArgs(10).
		WillReturnRows(suite.productRows().
			AddRow(uuid.New(), "Harina", (*string)(nil), decimal.RequireFromString("5.00"), 2, time.Now(), time.Now()).
			AddRow(uuid.New(), "Azucar", (*string)(nil), decimal.RequireFromString("7.00"), 8, time.Now(), time.Now()))

	products, err := suite.repo.ListBelowStock(suite.ctx, 10)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 2)
}

func (suite *ProductRepoTestSuite) TestSearch_NameAndPriceRange() {
	minPrice := decimal.RequireFromString("10.00")
	suite.mock.ExpectQuery(`FROM products\s+WHERE 1=1\s+AND \(name ILIKE \$1 OR COALESCE\(description, ''\) ILIKE \$1\) AND unit_price >= \$2`).
		WithArgs("%yerba%", minPrice, 50).
		WillReturnRows(suite.productRows().
			AddRow(suite.productID, "Yerba Mate 1kg", (*string)(nil), decimal.RequireFromString("25.50"), 10, time.Now(), time.Now()))

	products, err := suite.repo.Search(suite.ctx, &models.ProductSearchFilter{
		Query:    "yerba",
		MinPrice: &minPrice,
	})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 1)
}
