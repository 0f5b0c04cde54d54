package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	query := `SELECT id, slug, name, created_at FROM categories WHERE slug = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find category by slug")
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	query := `SELECT id, slug, name, created_at FROM categories ORDER BY name ASC`
	if err := r.DB.SelectContext(ctx, &categories, query); err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return categories, nil
}
