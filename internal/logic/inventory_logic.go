package logic

import (
	"errors"
	"fmt"

	"github.com/blues/bookstore/internal/apperr"
	"github.com/blues/bookstore/internal/model"
	"gorm.io/gorm"
)

// InventoryLogic 库存业务逻辑：原子扣减与下单快照
type InventoryLogic struct {
	db *gorm.DB
}

// NewInventoryLogic 创建库存业务逻辑
func NewInventoryLogic(db *gorm.DB) *InventoryLogic {
	return &InventoryLogic{db: db}
}

// ReserveStock 条件扣减库存：仅当现有库存足够时扣减，返回是否扣减成功
// 检查与写入是同一条UPDATE语句，并发调用由数据库行级串行化，无读写竞态窗口
func (l *InventoryLogic) ReserveStock(tx *gorm.DB, bookID int64, quantity int) (bool, error) {
	if tx == nil {
		tx = l.db
	}

	res := tx.Model(&model.Book{}).
		Where("id = ? AND stock >= ?", bookID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, fmt.Errorf("扣减库存失败: %w", res.Error)
	}

	return res.RowsAffected == 1, nil
}

// GetSnapshot 获取图书的下单快照（卖家、单价、库存）
func (l *InventoryLogic) GetSnapshot(tx *gorm.DB, bookID int64) (*model.BookSnapshot, error) {
	if tx == nil {
		tx = l.db
	}

	var snap model.BookSnapshot
	if err := tx.Model(&model.Book{}).
		Select("id", "seller_id", "price_cents", "stock").
		Where("id = ?", bookID).
		Take(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "图书不存在")
		}
		return nil, fmt.Errorf("查询图书快照失败: %w", err)
	}

	return &snap, nil
}
