package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/database/postgres"
)

const orderColumns = `id, user_id, address_id, total_amount, status, created_at, delivered_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Checkout(ctx context.Context, userID int64, addr *model.Address) (*model.Order, error) {
	var o *model.Order
	err := postgres.WithTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		// Lock the cart so concurrent checkouts and cart edits of this user
		// wait for us.
		var cartID int64
		err := tx.GetContext(ctx, &cartID, `SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperror.EmptyCart()
			}
			return errors.Wrap(err, "lock cart")
		}

		var lines []model.CartItem
		err = tx.SelectContext(ctx, &lines,
			`SELECT id, cart_id, product_id, qty, unit_price FROM cart_items WHERE cart_id = $1 ORDER BY id`,
			cartID,
		)
		if err != nil {
			return errors.Wrap(err, "read cart items")
		}
		if len(lines) == 0 {
			return apperror.EmptyCart()
		}

		addr.UserID = userID
		err = tx.QueryRowxContext(ctx, `
            INSERT INTO addresses (user_id, line1, city, state, postal_code)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING id, created_at`,
			addr.UserID, addr.Line1, addr.City, addr.State, addr.PostalCode,
		).Scan(&addr.ID, &addr.CreatedAt)
		if err != nil {
			return errors.Wrap(err, "insert address")
		}

		lineTotals := make([]model.CartLine, 0, len(lines))
		for _, l := range lines {
			lineTotals = append(lineTotals, model.CartLine{Qty: l.Qty, UnitPrice: l.UnitPrice})
		}
		order := &model.Order{
			UserID:      userID,
			AddressID:   addr.ID,
			TotalAmount: model.CartTotal(lineTotals),
			Status:      model.OrderStatusProcessing,
		}
		err = tx.QueryRowxContext(ctx, `
            INSERT INTO orders (user_id, address_id, total_amount, status)
            VALUES ($1, $2, $3, $4)
            RETURNING id, created_at`,
			order.UserID, order.AddressID, order.TotalAmount, order.Status,
		).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return errors.Wrap(err, "insert order")
		}

		for _, l := range lines {
			item := model.OrderItem{OrderID: order.ID, ProductID: l.ProductID, Qty: l.Qty, UnitPrice: l.UnitPrice}
			err = tx.QueryRowxContext(ctx, `
                INSERT INTO order_items (order_id, product_id, qty, unit_price)
                VALUES ($1, $2, $3, $4)
                RETURNING id`,
				item.OrderID, item.ProductID, item.Qty, item.UnitPrice,
			).Scan(&item.ID)
			if err != nil {
				return errors.Wrap(err, "insert order item")
			}
			order.Items = append(order.Items, item)
		}

		payment := &model.Payment{
			OrderID:       order.ID,
			PaidAmount:    order.TotalAmount,
			PaymentMethod: model.PaymentMethodCOD,
			Status:        model.PaymentStatusPaid,
		}
		err = tx.QueryRowxContext(ctx, `
            INSERT INTO payments (order_id, paid_amount, payment_method, status, paid_at)
            VALUES ($1, $2, $3, $4, now())
            RETURNING id, paid_at`,
			payment.OrderID, payment.PaidAmount, payment.PaymentMethod, payment.Status,
		).Scan(&payment.ID, &payment.PaidAt)
		if err != nil {
			return errors.Wrap(err, "insert payment")
		}
		order.Payment = payment

		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
			return errors.Wrap(err, "clear cart")
		}

		o = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PGRepository) ConfirmDelivery(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, `
        UPDATE orders SET status = $1, delivered_at = now()
        WHERE id = $2 AND user_id = $3 AND status = $4
        RETURNING `+orderColumns,
		model.OrderStatusDelivered, orderID, userID, model.OrderStatusProcessing,
	)
	if err == nil {
		return &o, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "confirm delivery")
	}

	// Nothing updated: either not this user's order or already delivered.
	var status model.OrderStatus
	err = r.DB.GetContext(ctx, &status, `SELECT status FROM orders WHERE id = $1 AND user_id = $2`, orderID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("order_not_found")
		}
		return nil, errors.Wrap(err, "load order status")
	}
	return nil, apperror.Conflict("order_already_delivered")
}

func (r *PGRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	orders := []model.Order{}
	err := r.DB.SelectContext(ctx, &orders,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY id DESC`,
		userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, 0, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
	}

	var items []model.OrderItem
	err = r.DB.SelectContext(ctx, &items,
		`SELECT id, order_id, product_id, qty, unit_price FROM order_items WHERE order_id = ANY($1) ORDER BY id`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, errors.Wrap(err, "list order items")
	}
	for _, it := range items {
		i := index[it.OrderID]
		orders[i].Items = append(orders[i].Items, it)
	}
	return orders, nil
}
