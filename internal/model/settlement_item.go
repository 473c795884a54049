package model

import (
	"time"
)

// SettlementItem 结算明细：单个订单明细对结算单的贡献
// 同一结算单下 sum(gross_cents) 与 total_gross_cents 严格相等；
// 佣金在明细级与总额级各自向下取整，逐条合计可能略低于总额级佣金
type SettlementItem struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SettlementID    int64 `json:"settlement_id" gorm:"not null;index"`
	OrderItemID     int64 `json:"order_item_id" gorm:"not null"` // 来源订单明细，只追加不修改
	SellerID        int64 `json:"seller_id" gorm:"not null;index"`
	GrossCents      int64 `json:"gross_cents" gorm:"not null"`
	CommissionCents int64 `json:"commission_cents" gorm:"not null"`
	NetCents        int64 `json:"net_cents" gorm:"not null"`
}

// TableName 自定义表名
func (SettlementItem) TableName() string {
	return "settlement_items"
}
