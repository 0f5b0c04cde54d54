package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewPGRepository(sqlx.NewDb(mockDB, "postgres")), mock
}

func TestCreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (email, password_hash, full_name)")).
		WithArgs("a@example.com", "hash", "Ann").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, now))

	u := &model.User{Email: "a@example.com", PasswordHash: "hash", FullName: "Ann"}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(7), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.Create(context.Background(), &model.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, "email_taken", apperror.Code(err))
}

func TestFindByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "full_name", "created_at"}).
		AddRow(3, "a@example.com", "hash", "Ann", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("a@example.com").
		WillReturnRows(rows)

	u, err := repo.FindByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, "Ann", u.FullName)
}

func TestFindByIDMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	u, err := repo.FindByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, u)
}
