package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
)

type UseCase interface {
	AddProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context, categoryID int64, limit int) ([]model.Product, error)
}
