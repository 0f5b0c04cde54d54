package dto

type AddItemInput struct {
	ProductID int64
	Qty       int
}

// ItemUpdate sets a line's quantity. Qty <= 0 removes the line.
type ItemUpdate struct {
	CartItemID int64 `json:"cart_item_id"`
	Qty        int   `json:"qty"`
}
