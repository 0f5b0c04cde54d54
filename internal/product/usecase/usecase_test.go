package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

type fakeRepo struct {
	products  []model.Product
	listCalls int
	createErr error
}

func (f *fakeRepo) Create(ctx context.Context, p *model.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = int64(len(f.products) + 1)
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindByCategory(ctx context.Context, categoryID int64, limit int) ([]model.Product, error) {
	f.listCalls++
	out := []model.Product{}
	for i := len(f.products) - 1; i >= 0 && len(out) < limit; i-- {
		if f.products[i].CategoryID == categoryID {
			out = append(out, f.products[i])
		}
	}
	return out, nil
}

func (f *fakeRepo) IsSKUUnique(ctx context.Context, sku string) (bool, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			return false, nil
		}
	}
	return true, nil
}

func validInput() *dto.CreateProductInput {
	return &dto.CreateProductInput{
		SKU:        "PH-1",
		Title:      "Phone",
		Price:      decimal.RequireFromString("199.99"),
		CategoryID: 1,
		Qty:        3,
	}
}

func TestAddProductValidation(t *testing.T) {
	uc := NewProductUseCase(&fakeRepo{}, nil, 0, logger.NewNopLogger())

	cases := map[string]func(in *dto.CreateProductInput){
		"missing sku":      func(in *dto.CreateProductInput) { in.SKU = " " },
		"missing title":    func(in *dto.CreateProductInput) { in.Title = "" },
		"missing category": func(in *dto.CreateProductInput) { in.CategoryID = 0 },
		"negative price":   func(in *dto.CreateProductInput) { in.Price = decimal.NewFromInt(-1) },
		"zero price":       func(in *dto.CreateProductInput) { in.Price = decimal.Zero },
		"sub-cent price":   func(in *dto.CreateProductInput) { in.Price = decimal.RequireFromString("19.999") },
		"price overflow":   func(in *dto.CreateProductInput) { in.Price = decimal.RequireFromString("10000000000") },
		"negative qty":     func(in *dto.CreateProductInput) { in.Qty = -1 },
		"qty overflow":     func(in *dto.CreateProductInput) { in.Qty = math.MaxInt32 + 1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(in)
			_, err := uc.AddProduct(context.Background(), in)
			assert.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, "invalid_product", apperror.Code(err))
		})
	}
}

func TestAddProductKeepsTwoDecimalPrice(t *testing.T) {
	uc := NewProductUseCase(&fakeRepo{}, nil, 0, logger.NewNopLogger())
	in := validInput()
	in.Price = decimal.RequireFromString("19.90")
	p, err := uc.AddProduct(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "19.90", p.Price.StringFixed(2))
}

func TestAddProductZeroQtyAllowed(t *testing.T) {
	uc := NewProductUseCase(&fakeRepo{}, nil, 0, logger.NewNopLogger())
	in := validInput()
	in.Qty = 0
	p, err := uc.AddProduct(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Qty)
}

func TestAddProductDuplicateSKU(t *testing.T) {
	uc := NewProductUseCase(&fakeRepo{}, nil, 0, logger.NewNopLogger())
	_, err := uc.AddProduct(context.Background(), validInput())
	require.NoError(t, err)

	_, err = uc.AddProduct(context.Background(), validInput())
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, "sku_taken", apperror.Code(err))
}

func TestGetProductNotFound(t *testing.T) {
	uc := NewProductUseCase(&fakeRepo{}, nil, 0, logger.NewNopLogger())
	_, err := uc.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "product_not_found", apperror.Code(err))
}

func TestListProductsCachedAndInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &fakeRepo{}
	uc := NewProductUseCase(repo, &cache.RedisClient{Client: client}, time.Minute, logger.NewNopLogger())
	ctx := context.Background()

	_, err := uc.AddProduct(ctx, validInput())
	require.NoError(t, err)

	first, err := uc.ListProducts(ctx, 1, 12)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, mr.Exists("products:category:1:12"))

	second, err := uc.ListProducts(ctx, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
	require.Len(t, second, 1)
	assert.True(t, second[0].Price.Equal(decimal.RequireFromString("199.99")))

	in := validInput()
	in.SKU = "PH-2"
	in.Title = "Phone 2"
	_, err = uc.AddProduct(ctx, in)
	require.NoError(t, err)
	assert.False(t, mr.Exists("products:category:1:12"))

	third, err := uc.ListProducts(ctx, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
	require.Len(t, third, 2)
	assert.Equal(t, "PH-2", third[0].SKU)
}
