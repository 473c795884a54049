package model

import (
	"time"

	"gorm.io/gorm"
)

// Book 图书（价格单位：分，避免浮点精度问题）
type Book struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	SellerID   int64  `json:"seller_id" gorm:"not null;index"`
	Title      string `json:"title" gorm:"not null"`
	PriceCents int64  `json:"price_cents" gorm:"not null"`
	Stock      int    `json:"stock" gorm:"not null;default:0"`
}

// TableName 自定义表名
func (Book) TableName() string {
	return "books"
}

// BookSnapshot 下单时刻的图书快照（卖家、单价、库存）
type BookSnapshot struct {
	ID             int64 `gorm:"column:id"`
	SellerID       int64 `gorm:"column:seller_id"`
	UnitPriceCents int64 `gorm:"column:price_cents"`
	Stock          int   `gorm:"column:stock"`
}
