package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/database/postgres"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (email, password_hash, full_name)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	err := r.DB.QueryRowxContext(ctx, query, u.Email, u.PasswordHash, u.FullName).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err, "users_email_key") {
			return apperror.Conflict("email_taken")
		}
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	query := `SELECT id, email, password_hash, full_name, created_at FROM users WHERE id = $1`
	if err := r.DB.GetContext(ctx, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find user by id")
	}
	return &u, nil
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := `SELECT id, email, password_hash, full_name, created_at FROM users WHERE email = $1`
	if err := r.DB.GetContext(ctx, &u, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find user by email")
	}
	return &u, nil
}
