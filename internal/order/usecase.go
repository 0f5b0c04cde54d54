package order

import (
	"context"

	cartdto "github.com/fekuna/omnipos-storefront/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
)

type UseCase interface {
	Checkout(ctx context.Context, userID int64, input *dto.CheckoutInput) (*model.Order, error)
	ConfirmDelivery(ctx context.Context, userID, orderID int64) error
	ListOrders(ctx context.Context, userID int64) ([]model.Order, error)
	Preview(ctx context.Context, userID int64) (*cartdto.CartView, error)
}
