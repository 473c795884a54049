package logic

import (
	"errors"
	"fmt"

	"github.com/blues/bookstore/internal/apperr"
	"github.com/blues/bookstore/internal/model"
	"gorm.io/gorm"
)

// OrderLogic 订单业务逻辑：下单与订单状态流转
type OrderLogic struct {
	db        *gorm.DB
	inventory *InventoryLogic
	cart      *CartLogic
}

// NewOrderLogic 创建订单业务逻辑
func NewOrderLogic(db *gorm.DB, inventory *InventoryLogic, cart *CartLogic) *OrderLogic {
	return &OrderLogic{db: db, inventory: inventory, cart: cart}
}

// CreateItem 下单条目
type CreateItem struct {
	BookID   int64
	Quantity int
}

// Create 按明细列表下单
// 整个过程在一个事务内：任一条目库存不足则全部回滚，不产生部分订单
func (l *OrderLogic) Create(userID int64, items []CreateItem) (*model.Order, error) {
	var order *model.Order
	err := l.db.Transaction(func(tx *gorm.DB) error {
		o, err := l.createInTx(tx, userID, items)
		if err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CreateFromCart 按购物车下单，成功后清空购物车（同一事务）
func (l *OrderLogic) CreateFromCart(userID int64) (*model.Order, error) {
	var order *model.Order
	err := l.db.Transaction(func(tx *gorm.DB) error {
		cartItems, err := l.cart.ListCheckoutItems(tx, userID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return apperr.New(apperr.CodeValidationFailed, "购物车为空")
		}

		items := make([]CreateItem, 0, len(cartItems))
		for _, ci := range cartItems {
			items = append(items, CreateItem{BookID: ci.BookID, Quantity: ci.Quantity})
		}

		o, err := l.createInTx(tx, userID, items)
		if err != nil {
			return err
		}
		if err := l.cart.Clear(tx, userID); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (l *OrderLogic) createInTx(tx *gorm.DB, userID int64, items []CreateItem) (*model.Order, error) {
	if len(items) == 0 {
		return nil, apperr.New(apperr.CodeValidationFailed, "订单条目不能为空")
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, apperr.New(apperr.CodeValidationFailed, "数量必须大于0")
		}
	}

	// 1) 逐条扣减库存，任一失败即放弃（事务回滚还原已扣减部分）
	for _, it := range items {
		ok, err := l.inventory.ReserveStock(tx, it.BookID, it.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.New(apperr.CodeConflict, "库存不足")
		}
	}

	// 2) 重新读取快照固化卖家与单价（以此刻价格为准）
	order := &model.Order{UserID: userID, Status: model.OrderStatusPending}
	orderItems := make([]model.OrderItem, 0, len(items))
	var total int64

	for _, it := range items {
		snap, err := l.inventory.GetSnapshot(tx, it.BookID)
		if err != nil {
			return nil, err
		}

		subtotal := snap.UnitPriceCents * int64(it.Quantity)
		total += subtotal
		orderItems = append(orderItems, model.OrderItem{
			BookID:         it.BookID,
			SellerID:       snap.SellerID,
			Quantity:       it.Quantity,
			UnitPriceCents: snap.UnitPriceCents,
			SubtotalCents:  subtotal,
		})
	}

	// 3) 落库订单与明细
	order.TotalAmountCents = total
	if err := tx.Create(order).Error; err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}
	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}
	if err := tx.Create(&orderItems).Error; err != nil {
		return nil, fmt.Errorf("创建订单明细失败: %w", err)
	}

	return order, nil
}

// ListMy 买家订单列表
func (l *OrderLogic) ListMy(userID int64, page, pageSize int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	if err := l.db.Model(&model.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("查询订单总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := l.db.Where("user_id = ?", userID).
		Order("id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("查询订单列表失败: %w", err)
	}

	return orders, total, nil
}

// DetailMy 买家订单详情（按订单ID+买家ID查询，他人订单一律按不存在处理）
func (l *OrderLogic) DetailMy(userID, orderID int64) (*model.Order, []model.OrderItem, error) {
	var order model.Order
	if err := l.db.Where("id = ? AND user_id = ?", orderID, userID).Take(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.New(apperr.CodeNotFound, "订单不存在")
		}
		return nil, nil, fmt.Errorf("查询订单失败: %w", err)
	}

	var items []model.OrderItem
	if err := l.db.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return nil, nil, fmt.Errorf("查询订单明细失败: %w", err)
	}

	return &order, items, nil
}

// PayMy 买家支付订单：仅pending可支付；已支付的订单重复支付按幂等处理
func (l *OrderLogic) PayMy(userID, orderID int64) (*model.Order, error) {
	var order *model.Order
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var o model.Order
		if err := tx.Where("id = ? AND user_id = ?", orderID, userID).Take(&o).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.CodeNotFound, "订单不存在")
			}
			return fmt.Errorf("查询订单失败: %w", err)
		}

		if o.Status == model.OrderStatusPaid {
			order = &o
			return nil
		}
		if o.Status != model.OrderStatusPending {
			return apperr.New(apperr.CodeConflict, "仅待支付状态的订单可以支付")
		}

		o.Status = model.OrderStatusPaid
		if err := tx.Model(&o).Update("status", o.Status).Error; err != nil {
			return fmt.Errorf("更新订单状态失败: %w", err)
		}
		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// AdminSetStatus 管理员覆写订单状态：不做状态机合法性检查，返回变更前后状态
func (l *OrderLogic) AdminSetStatus(orderID int64, newStatus model.OrderStatus) (model.OrderStatus, *model.Order, error) {
	if !model.ValidOrderStatus(newStatus) {
		return "", nil, apperr.New(apperr.CodeValidationFailed, "无效的订单状态")
	}

	var prev model.OrderStatus
	var order *model.Order
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var o model.Order
		if err := tx.Take(&o, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.CodeNotFound, "订单不存在")
			}
			return fmt.Errorf("查询订单失败: %w", err)
		}

		prev = o.Status
		o.Status = newStatus
		if err := tx.Model(&o).Update("status", o.Status).Error; err != nil {
			return fmt.Errorf("更新订单状态失败: %w", err)
		}
		order = &o
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return prev, order, nil
}

// AdminList 管理员订单列表
func (l *OrderLogic) AdminList(page, pageSize int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	if err := l.db.Model(&model.Order{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("查询订单总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := l.db.Order("id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("查询订单列表失败: %w", err)
	}

	return orders, total, nil
}
