package task

import (
	"sync"
	"time"

	"github.com/blues/bookstore/internal/config"
	"github.com/blues/bookstore/internal/logger"
	"github.com/blues/bookstore/internal/logic"
	"github.com/blues/bookstore/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// SettlementJob 定时结算生成任务：每次执行为上一个自然月生成结算单
type SettlementJob struct {
	db              *gorm.DB
	config          *config.Config
	settlementLogic *logic.SettlementLogic
}

// NewSettlementJob 创建定时结算生成任务
func NewSettlementJob(db *gorm.DB, cfg *config.Config) *SettlementJob {
	return &SettlementJob{
		db:              db,
		config:          cfg,
		settlementLogic: logic.NewSettlementLogic(db),
	}
}

// GetName 任务名称
func (j *SettlementJob) GetName() string {
	return "settlement_generator"
}

// GetSchedule 调度配置
func (j *SettlementJob) GetSchedule() gocron.JobDefinition {
	return gocron.CronJob(j.config.Task.SettlementCron, false)
}

// Execute 执行任务
func (j *SettlementJob) Execute() {
	start, end := previousMonth(time.Now())
	logger.Info("Starting settlement generation for period %s ~ %s",
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	ids, err := j.settlementLogic.Generate(start, end)
	if err != nil {
		logger.Error("Settlement generation failed: %v", err)
		return
	}
	logger.Info("Settlement generation finished, %d settlements created", len(ids))

	if len(ids) > 0 {
		j.notifySellers(ids)
	}
}

// notifySellers 通过协程池并发通知各卖家结算单已生成
func (j *SettlementJob) notifySellers(settlementIDs []int64) {
	var settlements []model.Settlement
	if err := j.db.Where("id IN ?", settlementIDs).Find(&settlements).Error; err != nil {
		logger.Error("Failed to load settlements for notification: %v", err)
		return
	}

	poolSize := j.config.Task.NotifyPoolSize
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		logger.Error("Failed to create notify pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range settlements {
		s := settlements[i]
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			// 通知投递由外部网关负责，这里只落结构化日志
			logger.Info("Settlement notification: seller=%d settlement=%d net_cents=%d",
				s.SellerID, s.ID, s.TotalNetCents)
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit notification for settlement %d: %v", s.ID, err)
		}
	}
	wg.Wait()
}

// previousMonth 上一个自然月的首末日
func previousMonth(now time.Time) (start, end time.Time) {
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start = firstOfThisMonth.AddDate(0, -1, 0)
	end = firstOfThisMonth.AddDate(0, 0, -1)
	return start, end
}
