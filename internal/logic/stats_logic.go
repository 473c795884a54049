package logic

import (
	"fmt"
	"time"

	"github.com/blues/bookstore/internal/apperr"
	"github.com/blues/bookstore/internal/model"
	"gorm.io/gorm"
)

// StatsLogic 管理员经营统计：按日销售额、热销图书、头部卖家
// 统计口径与结算一致：订单创建时间落在闭区间内且状态属于{paid, shipped, delivered}
type StatsLogic struct {
	db *gorm.DB
}

// NewStatsLogic 创建统计业务逻辑
func NewStatsLogic(db *gorm.DB) *StatsLogic {
	return &StatsLogic{db: db}
}

// DailySalesRow 单日销售汇总
type DailySalesRow struct {
	Day         time.Time `json:"date" gorm:"column:d"`
	GrossCents  int64     `json:"gross_cents" gorm:"column:gross"`
	OrdersCount int64     `json:"orders_count" gorm:"column:cnt"`
}

// TopBookRow 图书销售排行行
type TopBookRow struct {
	BookID     int64  `json:"book_id" gorm:"column:book_id"`
	Title      string `json:"title" gorm:"column:title"`
	SoldQty    int64  `json:"sold_qty" gorm:"column:sold_qty"`
	GrossCents int64  `json:"gross_cents" gorm:"column:gross"`
}

// TopSellerRow 卖家销售排行行
type TopSellerRow struct {
	SellerID   int64  `json:"seller_id" gorm:"column:seller_id"`
	Name       string `json:"name" gorm:"column:name"`
	GrossCents int64  `json:"gross_cents" gorm:"column:gross"`
}

// DailySales 闭区间[from, to]内按自然日汇总的销售额与订单数，按日期升序
func (l *StatsLogic) DailySales(from, to time.Time) ([]DailySalesRow, error) {
	if to.Before(from) {
		return nil, apperr.New(apperr.CodeValidationFailed, "to不能早于from")
	}

	endExclusive := to.AddDate(0, 0, 1)
	fulfilled := statusStrings(model.FulfilledOrderStatuses())

	var rows []DailySalesRow
	if err := l.db.Raw(`
		SELECT date(o.created_at)        AS d,
		       SUM(o.total_amount_cents) AS gross,
		       COUNT(*)                  AS cnt
		  FROM orders o
		 WHERE o.created_at >= ?
		   AND o.created_at < ?
		   AND o.status IN ?
		 GROUP BY date(o.created_at)
		 ORDER BY d ASC`, from, endExclusive, fulfilled).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询按日销售统计失败: %w", err)
	}

	return rows, nil
}

// TopBooks 闭区间[from, to]内按销售额降序的图书排行，limit取值收敛到1..50
func (l *StatsLogic) TopBooks(from, to time.Time, limit int) ([]TopBookRow, error) {
	if to.Before(from) {
		return nil, apperr.New(apperr.CodeValidationFailed, "to不能早于from")
	}

	endExclusive := to.AddDate(0, 0, 1)
	fulfilled := statusStrings(model.FulfilledOrderStatuses())

	var rows []TopBookRow
	if err := l.db.Raw(`
		SELECT oi.book_id              AS book_id,
		       b.title                 AS title,
		       SUM(oi.quantity)        AS sold_qty,
		       SUM(oi.subtotal_cents)  AS gross
		  FROM order_items oi
		  JOIN orders o ON o.id = oi.order_id
		  JOIN books b ON b.id = oi.book_id
		 WHERE o.created_at >= ?
		   AND o.created_at < ?
		   AND o.status IN ?
		 GROUP BY oi.book_id, b.title
		 ORDER BY gross DESC
		 LIMIT ?`, from, endExclusive, fulfilled, clampStatsLimit(limit)).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询图书销售排行失败: %w", err)
	}

	return rows, nil
}

// TopSellers 闭区间[from, to]内按销售额降序的卖家排行，limit取值收敛到1..50
func (l *StatsLogic) TopSellers(from, to time.Time, limit int) ([]TopSellerRow, error) {
	if to.Before(from) {
		return nil, apperr.New(apperr.CodeValidationFailed, "to不能早于from")
	}

	endExclusive := to.AddDate(0, 0, 1)
	fulfilled := statusStrings(model.FulfilledOrderStatuses())

	var rows []TopSellerRow
	if err := l.db.Raw(`
		SELECT oi.seller_id            AS seller_id,
		       s.name                  AS name,
		       SUM(oi.subtotal_cents)  AS gross
		  FROM order_items oi
		  JOIN orders o ON o.id = oi.order_id
		  JOIN sellers s ON s.id = oi.seller_id
		 WHERE o.created_at >= ?
		   AND o.created_at < ?
		   AND o.status IN ?
		 GROUP BY oi.seller_id, s.name
		 ORDER BY gross DESC
		 LIMIT ?`, from, endExclusive, fulfilled, clampStatsLimit(limit)).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询卖家销售排行失败: %w", err)
	}

	return rows, nil
}

func clampStatsLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > 50 {
		return 50
	}
	return limit
}
