package model

import "time"

// Inventory holds one row per product. A product without a row has qty 0.
type Inventory struct {
	ProductID int64     `db:"product_id"`
	Qty       int       `db:"qty"`
	UpdatedAt time.Time `db:"updated_at"`
}
