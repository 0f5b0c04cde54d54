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

const selectProduct = `
    SELECT p.id, p.sku, p.title, p.description, p.price, p.category_id,
           p.image_path, p.created_at, COALESCE(inv.qty, 0) AS qty
    FROM products p
    LEFT JOIN inventory inv ON inv.product_id = p.id
`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	return postgres.WithTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
            INSERT INTO products (sku, title, description, price, category_id, image_path)
            VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING id, created_at
        `
		err := tx.QueryRowxContext(ctx, query,
			p.SKU, p.Title, p.Description, p.Price, p.CategoryID, p.ImagePath,
		).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			switch {
			case postgres.IsUniqueViolation(err, "products_sku_key"):
				return apperror.Conflict("sku_taken")
			case postgres.IsForeignKeyViolation(err):
				return apperror.Validation("invalid_product")
			}
			return errors.Wrap(err, "insert product")
		}

		img := &model.ProductImage{ProductID: p.ID, ImagePath: p.ImagePath, IsPrimary: true}
		_, err = tx.NamedExecContext(ctx,
			`INSERT INTO product_images (product_id, image_path, is_primary) VALUES (:product_id, :image_path, :is_primary)`,
			img,
		)
		if err != nil {
			return errors.Wrap(err, "insert product image")
		}

		inv := &model.Inventory{ProductID: p.ID, Qty: p.Qty}
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO inventory (product_id, qty) VALUES (:product_id, :qty)`, inv); err != nil {
			return errors.Wrap(err, "insert inventory")
		}
		return nil
	})
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.DB.GetContext(ctx, &product, selectProduct+` WHERE p.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find product")
	}
	return &product, nil
}

func (r *PGRepository) FindByCategory(ctx context.Context, categoryID int64, limit int) ([]model.Product, error) {
	products := []model.Product{}
	query := selectProduct + ` WHERE p.category_id = $1 ORDER BY p.id DESC LIMIT $2`
	if err := r.DB.SelectContext(ctx, &products, query, categoryID, limit); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, sku string) (bool, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM products WHERE sku = $1`, sku); err != nil {
		return false, errors.Wrap(err, "check sku")
	}
	return count == 0, nil
}
