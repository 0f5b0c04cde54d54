package usecase

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/category"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, slug string) (*model.Category, error) {
	cat, err := uc.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound("category_not_found")
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.FindAll(ctx)
}
