package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	SKU         string          `db:"sku" json:"sku"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	CategoryID  int64           `db:"category_id" json:"category_id"`
	ImagePath   string          `db:"image_path" json:"image_path"`
	Qty         int             `db:"qty" json:"qty"` // Joined from inventory, 0 when absent
}

type ProductImage struct {
	ID        int64  `db:"id"`
	ProductID int64  `db:"product_id"`
	ImagePath string `db:"image_path"`
	IsPrimary bool   `db:"is_primary"`
}
