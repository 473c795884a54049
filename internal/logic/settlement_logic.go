package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/bookstore/internal/apperr"
	"github.com/blues/bookstore/internal/model"
	"gorm.io/gorm"
)

// SettlementLogic 结算业务逻辑：批量生成与确认/审批/打款流转
type SettlementLogic struct {
	db *gorm.DB
}

// NewSettlementLogic 创建结算业务逻辑
func NewSettlementLogic(db *gorm.DB) *SettlementLogic {
	return &SettlementLogic{db: db}
}

// sellerGrossRow 账期内按卖家聚合的销售总额
type sellerGrossRow struct {
	SellerID   int64 `gorm:"column:seller_id"`
	GrossCents int64 `gorm:"column:gross_cents"`
}

// settlementItemRow 账期内单个订单明细的销售额
type settlementItemRow struct {
	OrderItemID int64 `gorm:"column:order_item_id"`
	GrossCents  int64 `gorm:"column:gross_cents"`
}

// Generate 为闭区间账期[start, end]生成各卖家结算单，返回新建结算单ID列表
// 统计口径：订单创建时间落在账期内且状态属于{paid, shipped, delivered}的全部明细
// 重复执行不去重：同一账期再次生成会产生重复结算单，由管理员凭返回的ID列表审计
func (l *SettlementLogic) Generate(periodStart, periodEnd time.Time) ([]int64, error) {
	if periodEnd.Before(periodStart) {
		return nil, apperr.New(apperr.CodeValidationFailed, "period_end不能早于period_start")
	}

	endExclusive := periodEnd.AddDate(0, 0, 1)
	fulfilled := statusStrings(model.FulfilledOrderStatuses())

	var createdIDs []int64
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var groups []sellerGrossRow
		if err := tx.Raw(`
			SELECT oi.seller_id            AS seller_id,
			       SUM(oi.subtotal_cents)  AS gross_cents
			  FROM order_items oi
			  JOIN orders o ON o.id = oi.order_id
			 WHERE o.created_at >= ?
			   AND o.created_at < ?
			   AND o.status IN ?
			 GROUP BY oi.seller_id
			 ORDER BY oi.seller_id`, periodStart, endExclusive, fulfilled).
			Scan(&groups).Error; err != nil {
			return fmt.Errorf("聚合卖家销售额失败: %w", err)
		}

		for _, g := range groups {
			bps, err := l.fetchCommissionBps(tx, g.SellerID)
			if err != nil {
				return err
			}

			commission := calcCommission(g.GrossCents, bps)
			settlement := model.Settlement{
				SellerID:             g.SellerID,
				PeriodStart:          periodStart,
				PeriodEnd:            periodEnd,
				Status:               model.SettlementStatusPending,
				TotalGrossCents:      g.GrossCents,
				TotalCommissionCents: commission,
				TotalNetCents:        g.GrossCents - commission,
			}
			if err := tx.Create(&settlement).Error; err != nil {
				return fmt.Errorf("创建结算单失败: %w", err)
			}
			createdIDs = append(createdIDs, settlement.ID)

			// 同一过滤条件重查明细；逐条佣金按同一bps向下取整，
			// 总额级佣金以聚合销售额为准，不由逐条合计反推
			var itemRows []settlementItemRow
			if err := tx.Raw(`
				SELECT oi.id             AS order_item_id,
				       oi.subtotal_cents AS gross_cents
				  FROM order_items oi
				  JOIN orders o ON o.id = oi.order_id
				 WHERE o.created_at >= ?
				   AND o.created_at < ?
				   AND o.status IN ?
				   AND oi.seller_id = ?
				 ORDER BY oi.id`, periodStart, endExclusive, fulfilled, g.SellerID).
				Scan(&itemRows).Error; err != nil {
				return fmt.Errorf("查询卖家订单明细失败: %w", err)
			}

			items := make([]model.SettlementItem, 0, len(itemRows))
			for _, row := range itemRows {
				itemCommission := calcCommission(row.GrossCents, bps)
				items = append(items, model.SettlementItem{
					SettlementID:    settlement.ID,
					OrderItemID:     row.OrderItemID,
					SellerID:        g.SellerID,
					GrossCents:      row.GrossCents,
					CommissionCents: itemCommission,
					NetCents:        row.GrossCents - itemCommission,
				})
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return fmt.Errorf("创建结算明细失败: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return createdIDs, nil
}

// List 结算单列表，status为nil时不过滤
func (l *SettlementLogic) List(status *model.SettlementStatus, page, pageSize int) ([]model.Settlement, int64, error) {
	query := l.db.Model(&model.Settlement{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("查询结算单总数失败: %w", err)
	}

	var settlements []model.Settlement
	offset := (page - 1) * pageSize
	if err := query.Order("id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&settlements).Error; err != nil {
		return nil, 0, fmt.Errorf("查询结算单列表失败: %w", err)
	}

	return settlements, total, nil
}

// ListForSeller 卖家本人结算单列表
func (l *SettlementLogic) ListForSeller(sellerID int64, status *model.SettlementStatus, page, pageSize int) ([]model.Settlement, int64, error) {
	query := l.db.Model(&model.Settlement{}).Where("seller_id = ?", sellerID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("查询结算单总数失败: %w", err)
	}

	var settlements []model.Settlement
	offset := (page - 1) * pageSize
	if err := query.Order("id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&settlements).Error; err != nil {
		return nil, 0, fmt.Errorf("查询结算单列表失败: %w", err)
	}

	return settlements, total, nil
}

// Detail 结算单详情（管理员）
func (l *SettlementLogic) Detail(settlementID int64) (*model.Settlement, []model.SettlementItem, error) {
	settlement, err := l.get(l.db, settlementID)
	if err != nil {
		return nil, nil, err
	}

	var items []model.SettlementItem
	if err := l.db.Where("settlement_id = ?", settlementID).
		Find(&items).Error; err != nil {
		return nil, nil, fmt.Errorf("查询结算明细失败: %w", err)
	}

	return settlement, items, nil
}

// DetailForSeller 卖家本人结算单详情；他人结算单拒绝访问
func (l *SettlementLogic) DetailForSeller(sellerID, settlementID int64) (*model.Settlement, []model.SettlementItem, error) {
	settlement, err := l.get(l.db, settlementID)
	if err != nil {
		return nil, nil, err
	}
	if settlement.SellerID != sellerID {
		return nil, nil, apperr.New(apperr.CodeForbidden, "只能查看本人的结算单")
	}

	var items []model.SettlementItem
	if err := l.db.Where("settlement_id = ? AND seller_id = ?", settlementID, sellerID).
		Find(&items).Error; err != nil {
		return nil, nil, fmt.Errorf("查询结算明细失败: %w", err)
	}

	return settlement, items, nil
}

// SellerConfirm 卖家确认结算单：记录确认时刻，不改变status；重复确认为幂等空操作
func (l *SettlementLogic) SellerConfirm(sellerID, settlementID int64) (*model.Settlement, error) {
	var settlement *model.Settlement
	err := l.db.Transaction(func(tx *gorm.DB) error {
		s, err := l.get(tx, settlementID)
		if err != nil {
			return err
		}
		if s.SellerID != sellerID {
			return apperr.New(apperr.CodeForbidden, "只能确认本人的结算单")
		}
		if s.Status == model.SettlementStatusPaid {
			return apperr.New(apperr.CodeConflict, "结算单已打款")
		}
		if s.Status == model.SettlementStatusCancelled {
			return apperr.New(apperr.CodeConflict, "结算单已取消")
		}

		if s.SellerConfirmedAt == nil {
			now := time.Now()
			s.SellerConfirmedAt = &now
			if err := tx.Model(s).Update("seller_confirmed_at", now).Error; err != nil {
				return fmt.Errorf("更新结算单失败: %w", err)
			}
		}
		settlement = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settlement, nil
}

// Approve 管理员审批结算单：需卖家已确认且未打款
func (l *SettlementLogic) Approve(settlementID int64) (*model.Settlement, error) {
	var settlement *model.Settlement
	err := l.db.Transaction(func(tx *gorm.DB) error {
		s, err := l.get(tx, settlementID)
		if err != nil {
			return err
		}
		if s.Status == model.SettlementStatusPaid {
			return apperr.New(apperr.CodeConflict, "结算单已打款")
		}
		if s.SellerConfirmedAt == nil {
			return apperr.New(apperr.CodeConflict, "需要卖家先确认结算单")
		}

		s.Status = model.SettlementStatusApproved
		if err := tx.Model(s).Update("status", s.Status).Error; err != nil {
			return fmt.Errorf("更新结算单状态失败: %w", err)
		}
		settlement = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settlement, nil
}

// Pay 管理员打款：仅approved状态可打款，成功后记录打款时刻
func (l *SettlementLogic) Pay(settlementID int64) (*model.Settlement, error) {
	var settlement *model.Settlement
	err := l.db.Transaction(func(tx *gorm.DB) error {
		s, err := l.get(tx, settlementID)
		if err != nil {
			return err
		}
		if s.Status != model.SettlementStatusApproved {
			return apperr.New(apperr.CodeConflict, "仅已审批的结算单可以打款")
		}

		now := time.Now()
		s.Status = model.SettlementStatusPaid
		s.PaidAt = &now
		if err := tx.Model(s).Updates(map[string]interface{}{
			"status":  s.Status,
			"paid_at": now,
		}).Error; err != nil {
			return fmt.Errorf("更新结算单状态失败: %w", err)
		}
		settlement = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settlement, nil
}

func (l *SettlementLogic) get(tx *gorm.DB, settlementID int64) (*model.Settlement, error) {
	var s model.Settlement
	if err := tx.Take(&s, settlementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "结算单不存在")
		}
		return nil, fmt.Errorf("查询结算单失败: %w", err)
	}
	return &s, nil
}

// fetchCommissionBps 查询卖家佣金率；卖家记录缺失时按0处理
func (l *SettlementLogic) fetchCommissionBps(tx *gorm.DB, sellerID int64) (int, error) {
	var bps int
	res := tx.Raw("SELECT commission_bps FROM sellers WHERE id = ?", sellerID).Scan(&bps)
	if res.Error != nil {
		return 0, fmt.Errorf("查询卖家佣金率失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, nil
	}
	return bps, nil
}

// calcCommission 按basis points计算佣金，向下取整
func calcCommission(grossCents int64, bps int) int64 {
	return grossCents * int64(bps) / 10000
}

func statusStrings(statuses []model.OrderStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
