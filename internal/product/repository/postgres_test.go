package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type decimalArg struct{ want string }

func (a decimalArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(s)
	return err == nil && d.Equal(decimal.RequireFromString(a.want))
}

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewPGRepository(sqlx.NewDb(mockDB, "postgres")), mock
}

var productColumns = []string{"id", "sku", "title", "description", "price", "category_id", "image_path", "created_at", "qty"}

func newProduct() *model.Product {
	return &model.Product{
		SKU:         "PH-1",
		Title:       "Phone",
		Description: "A phone",
		Price:       decimal.RequireFromString("199.99"),
		CategoryID:  1,
		ImagePath:   "/img/phone.png",
		Qty:         5,
	}
}

func TestCreateProductWritesAllRows(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products (sku, title, description, price, category_id, image_path)")).
		WithArgs("PH-1", "Phone", "A phone", decimalArg{"199.99"}, int64(1), "/img/phone.png").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO product_images (product_id, image_path, is_primary) VALUES ($1, $2, $3)")).
		WithArgs(int64(10), "/img/phone.png", true).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO inventory (product_id, qty) VALUES ($1, $2)")).
		WithArgs(int64(10), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p := newProduct()
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(10), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductRollsBackOnInventoryFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO product_images")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO inventory")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), newProduct())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert inventory")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "products_sku_key"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), newProduct())
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, "sku_taken", apperror.Code(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDDefaultsMissingInventoryToZero(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN inventory inv ON inv.product_id = p.id")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(4, "LP-1", "Laptop", "", "999.00", 2, "", time.Now(), 0))

	p, err := repo.FindByID(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 0, p.Qty)
	assert.Equal(t, "999.00", p.Price.StringFixed(2))
}

func TestFindByIDMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(productColumns))

	p, err := repo.FindByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFindByCategoryNewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.category_id = $1 ORDER BY p.id DESC LIMIT $2")).
		WithArgs(int64(1), 12).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(9, "B", "Newer", "", "10.00", 1, "", now, 3).
			AddRow(8, "A", "Older", "", "12.50", 1, "", now, 0))

	products, err := repo.FindByCategory(context.Background(), 1, 12)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(9), products[0].ID)
	assert.Equal(t, 3, products[0].Qty)
}

func TestIsSKUUnique(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM products WHERE sku = $1")).
		WithArgs("PH-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.IsSKUUnique(context.Background(), "PH-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
