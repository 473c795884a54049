package logic

import (
	"errors"
	"fmt"

	"github.com/blues/bookstore/internal/apperr"
	"github.com/blues/bookstore/internal/model"
	"gorm.io/gorm"
)

// SellerOrderLogic 卖家侧订单业务逻辑
type SellerOrderLogic struct {
	db *gorm.DB
}

// NewSellerOrderLogic 创建卖家订单业务逻辑
func NewSellerOrderLogic(db *gorm.DB) *SellerOrderLogic {
	return &SellerOrderLogic{db: db}
}

// SellerOrderDetail 卖家视角的订单详情：只含本卖家的明细行
type SellerOrderDetail struct {
	Order               *model.Order      `json:"order"`
	SellerSubtotalCents int64             `json:"seller_subtotal_cents"`
	Items               []model.OrderItem `json:"items"`
}

// List 卖家订单明细列表：按明细展开，一行一条order_item，最新在前
func (l *SellerOrderLogic) List(sellerID int64, page, pageSize int) ([]model.SellerOrderItemRow, int64, error) {
	var total int64
	if err := l.db.Model(&model.OrderItem{}).
		Where("seller_id = ?", sellerID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("查询卖家订单明细总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	var rows []model.SellerOrderItemRow
	if err := l.db.Raw(`
		SELECT oi.order_id          AS order_id,
		       o.user_id            AS user_id,
		       o.status             AS status,
		       o.created_at         AS created_at,
		       oi.book_id           AS book_id,
		       oi.quantity          AS quantity,
		       oi.unit_price_cents  AS unit_price_cents,
		       oi.subtotal_cents    AS subtotal_cents
		  FROM order_items oi
		  JOIN orders o ON o.id = oi.order_id
		 WHERE oi.seller_id = ?
		 ORDER BY oi.id DESC
		 LIMIT ? OFFSET ?`, sellerID, pageSize, offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("查询卖家订单明细失败: %w", err)
	}

	return rows, total, nil
}

// Detail 卖家订单详情；该订单中无本卖家明细时按不存在处理，不暴露他人订单
func (l *SellerOrderLogic) Detail(sellerID, orderID int64) (*SellerOrderDetail, error) {
	var order model.Order
	if err := l.db.Take(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "订单不存在")
		}
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}

	var myItems []model.OrderItem
	if err := l.db.Where("order_id = ? AND seller_id = ?", orderID, sellerID).
		Find(&myItems).Error; err != nil {
		return nil, fmt.Errorf("查询订单明细失败: %w", err)
	}
	if len(myItems) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, "订单不存在")
	}

	var sellerSubtotal int64
	for _, it := range myItems {
		sellerSubtotal += it.SubtotalCents
	}

	return &SellerOrderDetail{
		Order:               &order,
		SellerSubtotalCents: sellerSubtotal,
		Items:               myItems,
	}, nil
}

// Ship 卖家发货：仅paid状态可发货；仅单一卖家订单允许卖家自行发货
func (l *SellerOrderLogic) Ship(sellerID, orderID int64) (model.OrderStatus, error) {
	var status model.OrderStatus
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Take(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.CodeNotFound, "订单不存在")
			}
			return fmt.Errorf("查询订单失败: %w", err)
		}

		var mine int64
		if err := tx.Model(&model.OrderItem{}).
			Where("order_id = ? AND seller_id = ?", orderID, sellerID).
			Count(&mine).Error; err != nil {
			return fmt.Errorf("查询订单明细失败: %w", err)
		}
		if mine == 0 {
			return apperr.New(apperr.CodeNotFound, "订单不存在")
		}

		if order.Status != model.OrderStatusPaid {
			return apperr.New(apperr.CodeConflict, "仅已支付状态的订单可以发货")
		}

		var distinctSellers int64
		if err := tx.Model(&model.OrderItem{}).
			Where("order_id = ?", orderID).
			Distinct("seller_id").
			Count(&distinctSellers).Error; err != nil {
			return fmt.Errorf("查询订单卖家数失败: %w", err)
		}
		if distinctSellers != 1 {
			return apperr.New(apperr.CodeConflict, "多卖家订单不支持卖家单独发货，请由管理员变更状态")
		}

		order.Status = model.OrderStatusShipped
		if err := tx.Model(&order).Update("status", order.Status).Error; err != nil {
			return fmt.Errorf("更新订单状态失败: %w", err)
		}
		status = order.Status
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}
