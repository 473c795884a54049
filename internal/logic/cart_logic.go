package logic

import (
	"errors"
	"fmt"

	"github.com/blues/bookstore/internal/apperr"
	"github.com/blues/bookstore/internal/model"
	"gorm.io/gorm"
)

// CartLogic 购物车业务逻辑
type CartLogic struct {
	db        *gorm.DB
	inventory *InventoryLogic
}

// NewCartLogic 创建购物车业务逻辑
func NewCartLogic(db *gorm.DB, inventory *InventoryLogic) *CartLogic {
	return &CartLogic{db: db, inventory: inventory}
}

// CartItemView 购物车条目视图
type CartItemView struct {
	ItemID         int64 `json:"item_id"`
	BookID         int64 `json:"book_id"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents int64 `json:"unit_price_cents"`
	LineCents      int64 `json:"line_cents"`
}

// CartView 购物车视图
type CartView struct {
	Items         []CartItemView `json:"items"`
	TotalQuantity int            `json:"total_quantity"`
	SubtotalCents int64          `json:"subtotal_cents"`
}

// getOrCreateCart 获取用户购物车，不存在则创建
func (l *CartLogic) getOrCreateCart(tx *gorm.DB, userID int64) (*model.Cart, error) {
	var cart model.Cart
	err := tx.Where("user_id = ?", userID).Take(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询购物车失败: %w", err)
	}

	cart = model.Cart{UserID: userID}
	if err := tx.Create(&cart).Error; err != nil {
		return nil, fmt.Errorf("创建购物车失败: %w", err)
	}
	return &cart, nil
}

// GetView 获取购物车视图
func (l *CartLogic) GetView(userID int64) (*CartView, error) {
	items, err := l.ListCheckoutItems(nil, userID)
	if err != nil {
		return nil, err
	}
	return toCartView(items), nil
}

// AddItem 加入购物车；同一图书累加数量
func (l *CartLogic) AddItem(userID, bookID int64, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.CodeValidationFailed, "数量必须大于0")
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		cart, err := l.getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		snap, err := l.inventory.GetSnapshot(tx, bookID)
		if err != nil {
			return err
		}
		if snap.Stock < quantity {
			return apperr.New(apperr.CodeValidationFailed, "库存不足")
		}

		var item model.CartItem
		err = tx.Where("cart_id = ? AND book_id = ?", cart.ID, bookID).Take(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = model.CartItem{
				CartID:         cart.ID,
				BookID:         bookID,
				Quantity:       quantity,
				UnitPriceCents: snap.UnitPriceCents,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("创建购物车条目失败: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("查询购物车条目失败: %w", err)
		}

		newQty := item.Quantity + quantity
		if snap.Stock < newQty {
			return apperr.New(apperr.CodeValidationFailed, "库存不足")
		}
		if err := tx.Model(&item).Update("quantity", newQty).Error; err != nil {
			return fmt.Errorf("更新购物车条目失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return l.GetView(userID)
}

// PatchItemQty 修改购物车条目数量
func (l *CartLogic) PatchItemQty(userID, itemID int64, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.CodeValidationFailed, "数量必须大于0")
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		cart, err := l.getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		var item model.CartItem
		if err := tx.Take(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.CodeNotFound, "购物车条目不存在")
			}
			return fmt.Errorf("查询购物车条目失败: %w", err)
		}
		if item.CartID != cart.ID {
			return apperr.New(apperr.CodeForbidden, "无权操作该购物车条目")
		}

		snap, err := l.inventory.GetSnapshot(tx, item.BookID)
		if err != nil {
			return err
		}
		if snap.Stock < quantity {
			return apperr.New(apperr.CodeValidationFailed, "库存不足")
		}

		if err := tx.Model(&item).Update("quantity", quantity).Error; err != nil {
			return fmt.Errorf("更新购物车条目失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return l.GetView(userID)
}

// DeleteItem 删除购物车条目
func (l *CartLogic) DeleteItem(userID, itemID int64) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		cart, err := l.getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		var item model.CartItem
		if err := tx.Take(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.CodeNotFound, "购物车条目不存在")
			}
			return fmt.Errorf("查询购物车条目失败: %w", err)
		}
		if item.CartID != cart.ID {
			return apperr.New(apperr.CodeForbidden, "无权操作该购物车条目")
		}

		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("删除购物车条目失败: %w", err)
		}
		return nil
	})
}

// ListCheckoutItems 列出用于结算下单的购物车条目
func (l *CartLogic) ListCheckoutItems(tx *gorm.DB, userID int64) ([]model.CartItem, error) {
	if tx == nil {
		tx = l.db
	}

	cart, err := l.getOrCreateCart(tx, userID)
	if err != nil {
		return nil, err
	}

	var items []model.CartItem
	if err := tx.Where("cart_id = ?", cart.ID).
		Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("查询购物车条目失败: %w", err)
	}
	return items, nil
}

// Clear 清空用户购物车
func (l *CartLogic) Clear(tx *gorm.DB, userID int64) error {
	if tx == nil {
		tx = l.db
	}

	cart, err := l.getOrCreateCart(tx, userID)
	if err != nil {
		return err
	}

	if err := tx.Where("cart_id = ?", cart.ID).
		Delete(&model.CartItem{}).Error; err != nil {
		return fmt.Errorf("清空购物车失败: %w", err)
	}
	return nil
}

func toCartView(items []model.CartItem) *CartView {
	view := &CartView{Items: make([]CartItemView, 0, len(items))}
	for _, it := range items {
		line := it.UnitPriceCents * int64(it.Quantity)
		view.Items = append(view.Items, CartItemView{
			ItemID:         it.ID,
			BookID:         it.BookID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			LineCents:      line,
		})
		view.TotalQuantity += it.Quantity
		view.SubtotalCents += line
	}
	return view
}
