package model

import (
	"time"
)

// OrderItem 订单明细（卖家与单价在下单时刻固化，此后不随目录变动）
type OrderItem struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OrderID        int64 `json:"order_id" gorm:"not null;index"`
	BookID         int64 `json:"book_id" gorm:"not null"`
	SellerID       int64 `json:"seller_id" gorm:"not null;index"`
	Quantity       int   `json:"quantity" gorm:"not null"`
	UnitPriceCents int64 `json:"unit_price_cents" gorm:"not null"`
	SubtotalCents  int64 `json:"subtotal_cents" gorm:"not null"` // = quantity * unit_price_cents
}

// TableName 自定义表名
func (OrderItem) TableName() string {
	return "order_items"
}

// SellerOrderItemRow 卖家订单明细列表行（order_items join orders 的投影）
type SellerOrderItemRow struct {
	OrderID        int64     `json:"order_id" gorm:"column:order_id"`
	UserID         int64     `json:"user_id" gorm:"column:user_id"`
	Status         string    `json:"status" gorm:"column:status"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	BookID         int64     `json:"book_id" gorm:"column:book_id"`
	Quantity       int       `json:"quantity" gorm:"column:quantity"`
	UnitPriceCents int64     `json:"unit_price_cents" gorm:"column:unit_price_cents"`
	SubtotalCents  int64     `json:"subtotal_cents" gorm:"column:subtotal_cents"`
}
