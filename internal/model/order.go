package model

import (
	"time"
)

// Order 订单（总额恒等于其明细小计之和）
type Order struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID           int64       `json:"user_id" gorm:"not null;index"`
	Status           OrderStatus `json:"status" gorm:"not null;default:'pending';index"`
	TotalAmountCents int64       `json:"total_amount_cents" gorm:"not null;default:0"`
}

// TableName 自定义表名
func (Order) TableName() string {
	return "orders"
}

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // 待支付
	OrderStatusPaid      OrderStatus = "paid"      // 已支付
	OrderStatusShipped   OrderStatus = "shipped"   // 已发货
	OrderStatusDelivered OrderStatus = "delivered" // 已送达
	OrderStatusCancelled OrderStatus = "cancelled" // 已取消（仅管理员覆写可达）
)

// ValidOrderStatus 判断状态取值是否合法
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// FulfilledOrderStatuses 计入结算的订单状态集合
func FulfilledOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered}
}
