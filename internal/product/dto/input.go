package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	SKU         string
	Title       string
	Description string
	Price       decimal.Decimal
	CategoryID  int64
	ImagePath   string
	Qty         int
}
