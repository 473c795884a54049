package model

import (
	"time"
)

// Settlement 结算单：一个卖家在一个闭区间账期内的应付汇总
// 恒有 total_net_cents = total_gross_cents - total_commission_cents
type Settlement struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SellerID    int64     `json:"seller_id" gorm:"not null;index:idx_settlement_seller_period"`
	PeriodStart time.Time `json:"period_start" gorm:"type:date;not null;index:idx_settlement_seller_period"`
	PeriodEnd   time.Time `json:"period_end" gorm:"type:date;not null;index:idx_settlement_seller_period"`

	Status               SettlementStatus `json:"status" gorm:"not null;default:'pending';index"`
	TotalGrossCents      int64            `json:"total_gross_cents" gorm:"not null;default:0"`
	TotalCommissionCents int64            `json:"total_commission_cents" gorm:"not null;default:0"`
	TotalNetCents        int64            `json:"total_net_cents" gorm:"not null;default:0"`

	Note              string     `json:"note,omitempty"`
	PaidAt            *time.Time `json:"paid_at"`             // 打款时刻，仅Pay设置
	SellerConfirmedAt *time.Time `json:"seller_confirmed_at"` // 卖家确认时刻，仅Confirm设置
}

// TableName 自定义表名
func (Settlement) TableName() string {
	return "settlements"
}

// SettlementStatus 结算状态
type SettlementStatus string

const (
	SettlementStatusPending   SettlementStatus = "pending"   // 待确认/审批
	SettlementStatusApproved  SettlementStatus = "approved"  // 已审批
	SettlementStatusPaid      SettlementStatus = "paid"      // 已打款
	SettlementStatusCancelled SettlementStatus = "cancelled" // 已取消（当前无业务路径可达）
)

// ValidSettlementStatus 判断状态取值是否合法
func ValidSettlementStatus(s SettlementStatus) bool {
	switch s {
	case SettlementStatusPending, SettlementStatusApproved,
		SettlementStatusPaid, SettlementStatusCancelled:
		return true
	}
	return false
}
