package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/blues/bookstore/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminStatsHandler 管理员经营统计接口
type AdminStatsHandler struct {
	statsLogic *logic.StatsLogic
}

func NewAdminStatsHandler(db *gorm.DB) *AdminStatsHandler {
	return &AdminStatsHandler{
		statsLogic: logic.NewStatsLogic(db),
	}
}

// DailySales 按日销售汇总
func (h *AdminStatsHandler) DailySales(c *gin.Context) {
	from, to, ok := parseStatsRange(c)
	if !ok {
		return
	}

	rows, err := h.statsLogic.DailySales(from, to)
	if err != nil {
		FailWithError(c, err)
		return
	}

	items := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		items = append(items, gin.H{
			"date":         r.Day.Format(dateLayout),
			"gross_cents":  r.GrossCents,
			"orders_count": r.OrdersCount,
		})
	}

	SuccessResponse(c, http.StatusOK, "查询成功", gin.H{"items": items})
}

// TopBooks 图书销售排行
func (h *AdminStatsHandler) TopBooks(c *gin.Context) {
	from, to, ok := parseStatsRange(c)
	if !ok {
		return
	}

	rows, err := h.statsLogic.TopBooks(from, to, parseStatsLimit(c))
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "查询成功", gin.H{"items": rows})
}

// TopSellers 卖家销售排行
func (h *AdminStatsHandler) TopSellers(c *gin.Context) {
	from, to, ok := parseStatsRange(c)
	if !ok {
		return
	}

	rows, err := h.statsLogic.TopSellers(from, to, parseStatsLimit(c))
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "查询成功", gin.H{"items": rows})
}

// parseStatsRange 解析from/to日期查询参数
func parseStatsRange(c *gin.Context) (from, to time.Time, ok bool) {
	from, err := time.Parse(dateLayout, c.Query("from"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "无效的from")
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse(dateLayout, c.Query("to"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "无效的to")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// parseStatsLimit 解析limit查询参数，缺省10
func parseStatsLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		return 10
	}
	return limit
}
