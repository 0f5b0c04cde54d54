package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Repository interface {
	// Create inserts the product, its primary image and an inventory row
	// holding p.Qty in one transaction.
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindByCategory(ctx context.Context, categoryID int64, limit int) ([]model.Product, error)
	IsSKUUnique(ctx context.Context, sku string) (bool, error)
}
