package category

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type UseCase interface {
	GetCategory(ctx context.Context, slug string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}
