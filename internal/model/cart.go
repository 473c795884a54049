package model

import (
	"time"
)

// Cart 购物车（每个用户一个）
type Cart struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID int64 `json:"user_id" gorm:"not null;uniqueIndex"`
}

// TableName 自定义表名
func (Cart) TableName() string {
	return "carts"
}

// CartItem 购物车条目
type CartItem struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CartID         int64 `json:"cart_id" gorm:"not null;index:idx_cart_item_cart_book,unique"`
	BookID         int64 `json:"book_id" gorm:"not null;index:idx_cart_item_cart_book,unique"`
	Quantity       int   `json:"quantity" gorm:"not null"`
	UnitPriceCents int64 `json:"unit_price_cents" gorm:"not null"` // 加入时的参考价，下单时以最新快照为准
}

// TableName 自定义表名
func (CartItem) TableName() string {
	return "cart_items"
}
