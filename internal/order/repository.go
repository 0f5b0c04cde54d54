package order

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Repository interface {
	// Checkout converts the user's cart into an order, its items, a COD
	// payment and a new address, then empties the cart. All of it commits
	// or none of it does.
	Checkout(ctx context.Context, userID int64, address *model.Address) (*model.Order, error)
	ConfirmDelivery(ctx context.Context, userID, orderID int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
}
