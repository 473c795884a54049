package model

import (
	"time"

	"gorm.io/gorm"
)

// Seller 卖家（佣金率以basis points表示，100 bps = 1%）
type Seller struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Name          string       `json:"name" gorm:"not null"`
	ContactEmail  string       `json:"contact_email"`
	CommissionBps int          `json:"commission_bps" gorm:"not null;default:0"` // 0..10000
	Status        SellerStatus `json:"status" gorm:"not null;default:'active'"`
}

// TableName 自定义表名
func (Seller) TableName() string {
	return "sellers"
}

// SellerStatus 卖家状态
type SellerStatus string

const (
	SellerStatusActive    SellerStatus = "active"    // 正常
	SellerStatusSuspended SellerStatus = "suspended" // 停用
)
