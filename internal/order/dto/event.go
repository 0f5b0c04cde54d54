package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

const (
	EventOrderPlaced    = "order.placed"
	EventOrderDelivered = "order.delivered"
)

// OrderEvent is the payload published to the orders topic, keyed by user id.
type OrderEvent struct {
	Type       string            `json:"type"`
	OrderID    int64             `json:"order_id"`
	UserID     int64             `json:"user_id"`
	Status     model.OrderStatus `json:"status"`
	Total      decimal.Decimal   `json:"total"`
	Items      []model.OrderItem `json:"items,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
