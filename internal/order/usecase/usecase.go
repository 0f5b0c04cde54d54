package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/cart"
	cartdto "github.com/fekuna/omnipos-storefront/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	"github.com/fekuna/omnipos-storefront/pkg/broker"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
)

const publishTimeout = 5 * time.Second

type orderUseCase struct {
	repo     order.Repository
	carts    cart.UseCase
	producer broker.Producer
	logger   logger.ZapLogger
}

func NewOrderUseCase(repo order.Repository, carts cart.UseCase, producer broker.Producer, log logger.ZapLogger) order.UseCase {
	if producer == nil {
		producer = broker.NopProducer{}
	}
	return &orderUseCase{
		repo:     repo,
		carts:    carts,
		producer: producer,
		logger:   log,
	}
}

func (uc *orderUseCase) Checkout(ctx context.Context, userID int64, input *dto.CheckoutInput) (*model.Order, error) {
	if userID == 0 {
		return nil, apperror.Auth("login_required")
	}
	addr := &model.Address{
		Line1:      strings.TrimSpace(input.Line1),
		City:       strings.TrimSpace(input.City),
		State:      strings.TrimSpace(input.State),
		PostalCode: strings.TrimSpace(input.PostalCode),
	}
	if addr.Line1 == "" || addr.City == "" || addr.State == "" || addr.PostalCode == "" {
		return nil, apperror.Validation("address_required")
	}

	o, err := uc.repo.Checkout(ctx, userID, addr)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order placed",
		zap.Int64("order_id", o.ID),
		zap.Int64("user_id", userID),
		zap.String("total", o.TotalAmount.StringFixed(2)),
	)
	uc.publish(ctx, &dto.OrderEvent{
		Type:       dto.EventOrderPlaced,
		OrderID:    o.ID,
		UserID:     userID,
		Status:     o.Status,
		Total:      o.TotalAmount,
		Items:      o.Items,
		OccurredAt: o.CreatedAt,
	})
	return o, nil
}

func (uc *orderUseCase) ConfirmDelivery(ctx context.Context, userID, orderID int64) error {
	if userID == 0 {
		return apperror.Auth("login_required")
	}
	o, err := uc.repo.ConfirmDelivery(ctx, userID, orderID)
	if err != nil {
		return err
	}

	occurred := time.Now()
	if o.DeliveredAt != nil {
		occurred = *o.DeliveredAt
	}
	uc.publish(ctx, &dto.OrderEvent{
		Type:       dto.EventOrderDelivered,
		OrderID:    o.ID,
		UserID:     userID,
		Status:     o.Status,
		Total:      o.TotalAmount,
		OccurredAt: occurred,
	})
	return nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if userID == 0 {
		return nil, apperror.Auth("login_required")
	}
	return uc.repo.ListByUser(ctx, userID)
}

func (uc *orderUseCase) Preview(ctx context.Context, userID int64) (*cartdto.CartView, error) {
	return uc.carts.View(ctx, userID)
}

// publish runs after commit. The order already exists, so a broker failure
// is logged and otherwise ignored.
func (uc *orderUseCase) publish(ctx context.Context, event *dto.OrderEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := uc.producer.Publish(ctx, strconv.FormatInt(event.UserID, 10), event); err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("type", event.Type),
			zap.Int64("order_id", event.OrderID),
			zap.Error(err),
		)
	}
}
