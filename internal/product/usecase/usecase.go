package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

type productUseCase struct {
	repo     product.Repository
	cache    *cache.RedisClient
	cacheTTL time.Duration
	logger   logger.ZapLogger
}

// NewProductUseCase builds the catalog usecase. A nil cache or a zero ttl
// disables listing caching.
func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, cacheTTL time.Duration, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (uc *productUseCase) AddProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	p := &model.Product{
		SKU:         strings.TrimSpace(input.SKU),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		ImagePath:   strings.TrimSpace(input.ImagePath),
		Qty:         input.Qty,
	}
	if !validProduct(p) {
		return nil, apperror.Validation("invalid_product")
	}

	unique, err := uc.repo.IsSKUUnique(ctx, p.SKU)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, apperror.Conflict("sku_taken")
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidateCategoryCache(ctx, p.CategoryID)
	uc.logger.Info("product created", zap.Int64("product_id", p.ID), zap.String("sku", p.SKU))
	return p, nil
}

// Bounds of the price NUMERIC(12,2) and inventory INTEGER columns.
var maxPrice = decimal.New(1, 10)

const maxQty = math.MaxInt32

// validProduct requires a positive price with at most two decimal places so
// the stored price equals the one returned to the caller.
func validProduct(p *model.Product) bool {
	if p.SKU == "" || p.Title == "" || p.CategoryID <= 0 {
		return false
	}
	if !p.Price.IsPositive() || !p.Price.Equal(p.Price.Round(2)) || p.Price.GreaterThanOrEqual(maxPrice) {
		return false
	}
	return p.Qty >= 0 && p.Qty <= maxQty
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product_not_found")
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, categoryID int64, limit int) ([]model.Product, error) {
	cacheKey := listCacheKey(categoryID, limit)
	if uc.cacheEnabled() {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var products []model.Product
			if err := json.Unmarshal([]byte(val), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := uc.repo.FindByCategory(ctx, categoryID, limit)
	if err != nil {
		return nil, err
	}

	if uc.cacheEnabled() {
		if data, err := json.Marshal(products); err == nil {
			if err := uc.cache.Client.Set(ctx, cacheKey, data, uc.cacheTTL).Err(); err != nil {
				uc.logger.Warn("failed to cache product list", zap.Error(err))
			}
		}
	}
	return products, nil
}

func (uc *productUseCase) cacheEnabled() bool {
	return uc.cache != nil && uc.cacheTTL > 0
}

func listCacheKey(categoryID int64, limit int) string {
	return fmt.Sprintf("products:category:%d:%d", categoryID, limit)
}

func (uc *productUseCase) invalidateCategoryCache(ctx context.Context, categoryID int64) {
	if uc.cache == nil {
		return
	}
	pattern := fmt.Sprintf("products:category:%d:*", categoryID)
	iter := uc.cache.Client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		uc.logger.Warn("failed to scan product cache", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := uc.cache.Client.Del(ctx, keys...).Err(); err != nil {
			uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
		}
	}
}
