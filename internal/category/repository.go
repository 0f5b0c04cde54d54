package category

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Repository interface {
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
}
