package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/database/postgres"
)

// The no-op DO UPDATE makes RETURNING yield the existing row and takes its
// row lock, which serializes cart mutations of one user.
const upsertCart = `
    INSERT INTO carts (user_id) VALUES ($1)
    ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
    RETURNING id, user_id, created_at
`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetOrCreateCart(ctx context.Context, userID int64) (*model.Cart, error) {
	var c model.Cart
	if err := r.DB.GetContext(ctx, &c, upsertCart, userID); err != nil {
		return nil, errors.Wrap(err, "get or create cart")
	}
	return &c, nil
}

func (r *PGRepository) AddItem(ctx context.Context, userID, productID int64, qty int) error {
	return postgres.WithTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		var c model.Cart
		if err := tx.GetContext(ctx, &c, upsertCart, userID); err != nil {
			return errors.Wrap(err, "get or create cart")
		}

		var price decimal.Decimal
		err := tx.GetContext(ctx, &price, `SELECT price FROM products WHERE id = $1`, productID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperror.NotFound("product_not_found")
			}
			return errors.Wrap(err, "load product price")
		}

		query := `
            INSERT INTO cart_items (cart_id, product_id, qty, unit_price)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (cart_id, product_id) DO UPDATE SET qty = cart_items.qty + EXCLUDED.qty
        `
		if _, err := tx.ExecContext(ctx, query, c.ID, productID, qty, price); err != nil {
			return errors.Wrap(err, "upsert cart item")
		}
		return nil
	})
}

// UpdateItems holds the cart row lock for the whole batch so a concurrent
// checkout either sees all of it or none of it. Each line runs under its own
// savepoint: a failing line is rolled back alone and the rest still commit.
// The first line error is returned after commit.
func (r *PGRepository) UpdateItems(ctx context.Context, userID int64, updates []dto.ItemUpdate) error {
	var firstErr error
	err := postgres.WithTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		var c model.Cart
		if err := tx.GetContext(ctx, &c, upsertCart, userID); err != nil {
			return errors.Wrap(err, "lock cart")
		}

		for _, u := range updates {
			if _, err := tx.ExecContext(ctx, `SAVEPOINT cart_line`); err != nil {
				return errors.Wrap(err, "savepoint")
			}
			if err := applyLine(ctx, tx, c.ID, u); err != nil {
				if _, rbErr := tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT cart_line`); rbErr != nil {
					return errors.Wrap(rbErr, "rollback to savepoint")
				}
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if _, err := tx.ExecContext(ctx, `RELEASE SAVEPOINT cart_line`); err != nil {
				return errors.Wrap(err, "release savepoint")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return firstErr
}

// applyLine deletes the line when qty <= 0, otherwise sets its qty. Lines of
// other carts match nothing.
func applyLine(ctx context.Context, tx *sqlx.Tx, cartID int64, u dto.ItemUpdate) error {
	if u.Qty <= 0 {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`,
			u.CartItemID, cartID,
		)
		return errors.Wrapf(err, "delete cart item %d", u.CartItemID)
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE cart_items SET qty = $1 WHERE id = $2 AND cart_id = $3`,
		u.Qty, u.CartItemID, cartID,
	)
	return errors.Wrapf(err, "update cart item %d", u.CartItemID)
}

func (r *PGRepository) ListLines(ctx context.Context, cartID int64) ([]model.CartLine, error) {
	lines := []model.CartLine{}
	query := `
        SELECT ci.id AS cart_item_id, ci.product_id, p.title, p.description, p.image_path,
               ci.qty, ci.unit_price
        FROM cart_items ci
        JOIN products p ON p.id = ci.product_id
        WHERE ci.cart_id = $1
        ORDER BY ci.id
    `
	if err := r.DB.SelectContext(ctx, &lines, query, cartID); err != nil {
		return nil, errors.Wrap(err, "list cart lines")
	}
	return lines, nil
}
