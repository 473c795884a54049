package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户（身份由上游网关解析，服务内只做角色判定）
type User struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Email    string   `json:"email" gorm:"uniqueIndex"`
	Role     UserRole `json:"role" gorm:"not null;default:'buyer'"`
	SellerID *int64   `json:"seller_id"` // 仅卖家角色持有
}

// TableName 自定义表名
func (User) TableName() string {
	return "users"
}

// UserRole 用户角色
type UserRole string

const (
	RoleBuyer  UserRole = "buyer"  // 买家
	RoleSeller UserRole = "seller" // 卖家
	RoleAdmin  UserRole = "admin"  // 管理员
)
