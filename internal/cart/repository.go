package cart

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Repository interface {
	// GetOrCreateCart is an insert-or-fetch on carts.user_id, safe under
	// concurrent calls for the same user.
	GetOrCreateCart(ctx context.Context, userID int64) (*model.Cart, error)
	// AddItem merges qty into the existing line for the product, keeping its
	// unit price, or inserts a line priced at the current product price.
	AddItem(ctx context.Context, userID, productID int64, qty int) error
	// UpdateItems applies the updates to the user's cart under the cart row
	// lock. Lines fail independently; the first failure is returned.
	UpdateItems(ctx context.Context, userID int64, updates []dto.ItemUpdate) error
	ListLines(ctx context.Context, cartID int64) ([]model.CartLine, error)
}
