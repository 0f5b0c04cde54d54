package model

import "github.com/shopspring/decimal"

type Cart struct {
	BaseModel
	UserID int64 `db:"user_id" json:"user_id"`
}

type CartItem struct {
	ID        int64           `db:"id" json:"id"`
	CartID    int64           `db:"cart_id" json:"cart_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Qty       int             `db:"qty" json:"qty"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"` // Snapshot taken when the line was created
}

// CartLine is a cart item joined with the product fields shown to the user.
type CartLine struct {
	CartItemID  int64           `db:"cart_item_id" json:"cart_item_id"`
	ProductID   int64           `db:"product_id" json:"product_id"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	ImagePath   string          `db:"image_path" json:"image_path"`
	Qty         int             `db:"qty" json:"qty"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// CartTotal sums qty x unit_price in fixed-point arithmetic.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
