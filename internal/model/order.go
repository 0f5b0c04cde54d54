package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
)

const (
	PaymentMethodCOD  = "COD"
	PaymentStatusPaid = "paid"
)

type Address struct {
	BaseModel
	UserID     int64  `db:"user_id" json:"user_id"`
	Line1      string `db:"line1" json:"line1"`
	City       string `db:"city" json:"city"`
	State      string `db:"state" json:"state"`
	PostalCode string `db:"postal_code" json:"postal_code"`
}

type Order struct {
	BaseModel
	UserID      int64           `db:"user_id" json:"user_id"`
	AddressID   int64           `db:"address_id" json:"address_id"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	Status      OrderStatus     `db:"status" json:"status"`
	DeliveredAt *time.Time      `db:"delivered_at" json:"delivered_at"` // Nullable
	Items       []OrderItem     `db:"-" json:"items,omitempty"`
	Payment     *Payment        `db:"-" json:"payment,omitempty"`
}

type OrderItem struct {
	ID        int64           `db:"id" json:"id"`
	OrderID   int64           `db:"order_id" json:"order_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Qty       int             `db:"qty" json:"qty"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
}

type Payment struct {
	ID            int64           `db:"id" json:"id"`
	OrderID       int64           `db:"order_id" json:"order_id"`
	PaidAmount    decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	Status        string          `db:"status" json:"status"`
	PaidAt        time.Time       `db:"paid_at" json:"paid_at"`
}
