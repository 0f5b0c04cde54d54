package dto

import (
	"github.com/shopspring/decimal"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type CartView struct {
	CartID int64            `json:"cart_id"`
	Items  []model.CartLine `json:"items"`
	Total  decimal.Decimal  `json:"total"`
}
