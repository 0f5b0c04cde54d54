package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewPGRepository(sqlx.NewDb(mockDB, "postgres")), mock
}

func TestFindBySlug(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE slug = $1")).
		WithArgs("laptops").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "created_at"}).
			AddRow(2, "laptops", "Laptops", time.Now()))

	c, err := repo.FindBySlug(context.Background(), "laptops")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, int64(2), c.ID)
	assert.Equal(t, "Laptops", c.Name)
}

func TestFindBySlugUnknown(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE slug = $1")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "created_at"}))

	c, err := repo.FindBySlug(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestFindAllOrderedByName(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM categories ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "created_at"}).
			AddRow(3, "accessories", "Accessories", now).
			AddRow(2, "laptops", "Laptops", now))

	cats, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "accessories", cats[0].Slug)
}

func TestFindAllError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM categories").WillReturnError(errors.New("conn refused"))

	_, err := repo.FindAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list categories")
}
