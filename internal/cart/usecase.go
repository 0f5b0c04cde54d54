package cart

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/cart/dto"
)

type UseCase interface {
	AddItem(ctx context.Context, userID int64, input *dto.AddItemInput) error
	UpdateItems(ctx context.Context, userID int64, updates []dto.ItemUpdate) error
	View(ctx context.Context, userID int64) (*dto.CartView, error)
}
