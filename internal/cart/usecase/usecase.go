package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

type cartUseCase struct {
	repo   cart.Repository
	logger logger.ZapLogger
}

func NewCartUseCase(repo cart.Repository, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *cartUseCase) AddItem(ctx context.Context, userID int64, input *dto.AddItemInput) error {
	if userID == 0 {
		return apperror.Auth("login_required")
	}
	if input.Qty <= 0 {
		return apperror.Validation("invalid_quantity")
	}
	return uc.repo.AddItem(ctx, userID, input.ProductID, input.Qty)
}

// UpdateItems applies each update on its own. A failing line does not stop
// the remaining ones; the first error is returned.
func (uc *cartUseCase) UpdateItems(ctx context.Context, userID int64, updates []dto.ItemUpdate) error {
	if userID == 0 {
		return apperror.Auth("login_required")
	}
	if err := uc.repo.UpdateItems(ctx, userID, updates); err != nil {
		uc.logger.Error("failed to update cart",
			zap.Int64("user_id", userID),
			zap.Int("lines", len(updates)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (uc *cartUseCase) View(ctx context.Context, userID int64) (*dto.CartView, error) {
	if userID == 0 {
		return nil, apperror.Auth("login_required")
	}
	c, err := uc.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.repo.ListLines(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CartView{
		CartID: c.ID,
		Items:  lines,
		Total:  model.CartTotal(lines),
	}, nil
}
