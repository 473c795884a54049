package handler

import (
	"net/http"
	"time"

	"github.com/blues/bookstore/internal/logic"
	"github.com/blues/bookstore/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// AdminSettlementHandler 管理员结算接口
type AdminSettlementHandler struct {
	settlementLogic *logic.SettlementLogic
}

func NewAdminSettlementHandler(db *gorm.DB) *AdminSettlementHandler {
	return &AdminSettlementHandler{
		settlementLogic: logic.NewSettlementLogic(db),
	}
}

type generateSettlementRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

// Generate 为指定账期生成结算单
func (h *AdminSettlementHandler) Generate(c *gin.Context) {
	var req generateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	start, err := time.Parse(dateLayout, req.PeriodStart)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "无效的period_start")
		return
	}
	end, err := time.Parse(dateLayout, req.PeriodEnd)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "无效的period_end")
		return
	}

	ids, err := h.settlementLogic.Generate(start, end)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "结算单已生成", gin.H{
		"count":          len(ids),
		"settlement_ids": ids,
	})
}

// List 结算单列表，可按status过滤
func (h *AdminSettlementHandler) List(c *gin.Context) {
	page, pageSize := parsePage(c)
	status, ok := parseStatusFilter(c)
	if !ok {
		return
	}

	settlements, total, err := h.settlementLogic.List(status, page, pageSize)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "查询成功", gin.H{
		"items":     settlements,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Detail 结算单详情
func (h *AdminSettlementHandler) Detail(c *gin.Context) {
	settlementID, ok := parseID(c, "settlementId")
	if !ok {
		return
	}

	settlement, items, err := h.settlementLogic.Detail(settlementID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "查询成功", gin.H{
		"settlement": settlement,
		"items":      items,
	})
}

// Approve 审批结算单
func (h *AdminSettlementHandler) Approve(c *gin.Context) {
	settlementID, ok := parseID(c, "settlementId")
	if !ok {
		return
	}

	settlement, err := h.settlementLogic.Approve(settlementID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "审批成功", settlement)
}

// Pay 打款
func (h *AdminSettlementHandler) Pay(c *gin.Context) {
	settlementID, ok := parseID(c, "settlementId")
	if !ok {
		return
	}

	settlement, err := h.settlementLogic.Pay(settlementID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "打款成功", settlement)
}

// SellerSettlementHandler 卖家结算接口
type SellerSettlementHandler struct {
	settlementLogic *logic.SettlementLogic
}

func NewSellerSettlementHandler(db *gorm.DB) *SellerSettlementHandler {
	return &SellerSettlementHandler{
		settlementLogic: logic.NewSettlementLogic(db),
	}
}

// List 本卖家结算单列表
func (h *SellerSettlementHandler) List(c *gin.Context) {
	page, pageSize := parsePage(c)
	status, ok := parseStatusFilter(c)
	if !ok {
		return
	}

	settlements, total, err := h.settlementLogic.ListForSeller(currentSellerID(c), status, page, pageSize)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "查询成功", gin.H{
		"items":     settlements,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Detail 本卖家结算单详情
func (h *SellerSettlementHandler) Detail(c *gin.Context) {
	settlementID, ok := parseID(c, "settlementId")
	if !ok {
		return
	}

	settlement, items, err := h.settlementLogic.DetailForSeller(currentSellerID(c), settlementID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "查询成功", gin.H{
		"settlement": settlement,
		"items":      items,
	})
}

// Confirm 卖家确认结算单
func (h *SellerSettlementHandler) Confirm(c *gin.Context) {
	settlementID, ok := parseID(c, "settlementId")
	if !ok {
		return
	}

	settlement, err := h.settlementLogic.SellerConfirm(currentSellerID(c), settlementID)
	if err != nil {
		FailWithError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "确认成功", settlement)
}

// parseStatusFilter 解析status查询参数，缺省时返回nil表示不过滤
func parseStatusFilter(c *gin.Context) (*model.SettlementStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return nil, true
	}
	status := model.SettlementStatus(raw)
	if !model.ValidSettlementStatus(status) {
		ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", "无效的status")
		return nil, false
	}
	return &status, true
}
